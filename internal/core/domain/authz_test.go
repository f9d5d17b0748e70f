package domain

import "testing"

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name       string
		actorBank  uint
		entityBank uint
		permitted  bool
		reason     Reason
	}{
		{"same bank", 1, 1, true, ReasonPermitted},
		{"different bank", 1, 2, false, ReasonBankMismatch},
		{"zero actor bank", 0, 2, false, ReasonBankMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanMutate(tt.actorBank, tt.entityBank)
			if d.Permitted != tt.permitted {
				t.Errorf("Permitted = %v, want %v", d.Permitted, tt.permitted)
			}
			if d.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", d.Reason, tt.reason)
			}
		})
	}
}

func TestCanReassign(t *testing.T) {
	tests := []struct {
		name       string
		actorBank  uint
		entityBank uint
		newBank    uint
		permitted  bool
		reason     Reason
	}{
		{"keep own bank", 1, 1, 1, true, ReasonPermitted},
		{"move to foreign bank", 1, 1, 2, false, ReasonBankReassignment},
		{"entity in foreign bank", 1, 2, 1, false, ReasonBankMismatch},
		{"foreign entity to foreign bank", 1, 2, 3, false, ReasonBankMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanReassign(tt.actorBank, tt.entityBank, tt.newBank)
			if d.Permitted != tt.permitted {
				t.Errorf("Permitted = %v, want %v", d.Permitted, tt.permitted)
			}
			if d.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", d.Reason, tt.reason)
			}
		})
	}
}

func TestCheckTriParty(t *testing.T) {
	tests := []struct {
		name        string
		subjectBank uint
		actorBank   uint
		targetBank  uint
		permitted   bool
		reason      Reason
	}{
		{"all match", 2, 2, 2, true, ReasonPermitted},
		{"subject in another bank", 1, 2, 2, false, ReasonSubjectMismatch},
		{"target in another bank", 2, 2, 1, false, ReasonTargetMismatch},
		{"nothing matches", 1, 2, 3, false, ReasonSubjectMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckTriParty(tt.subjectBank, tt.actorBank, tt.targetBank)
			if d.Permitted != tt.permitted {
				t.Errorf("Permitted = %v, want %v", d.Permitted, tt.permitted)
			}
			if d.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", d.Reason, tt.reason)
			}
		})
	}
}
