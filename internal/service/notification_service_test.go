package service

import "testing"

func TestShouldSendEditNotification(t *testing.T) {
	tests := []struct {
		name                string
		timeChanged         bool
		practitionerChanged bool
		wasAutoAssigned     bool
		want                bool
	}{
		{name: "nothing changed", want: false},
		{name: "time change notifies", timeChanged: true, want: true},
		{name: "time change on auto-assigned notifies", timeChanged: true, wasAutoAssigned: true, want: true},
		{name: "specific to specific practitioner change notifies", practitionerChanged: true, want: true},
		{name: "auto-assigned practitioner-only change stays silent", practitionerChanged: true, wasAutoAssigned: true, want: false},
		{name: "auto-assigned practitioner and time change notifies", timeChanged: true, practitionerChanged: true, wasAutoAssigned: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldSendEditNotification(tt.timeChanged, tt.practitionerChanged, tt.wasAutoAssigned)
			if got != tt.want {
				t.Errorf("ShouldSendEditNotification(%v, %v, %v) = %v, want %v",
					tt.timeChanged, tt.practitionerChanged, tt.wasAutoAssigned, got, tt.want)
			}
		})
	}
}
