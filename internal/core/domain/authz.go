package domain

// Every mutable row in the system carries a bank_id, and every admin belongs to
// exactly one bank. The policy below is the single place where bank scoping is
// decided; handlers and services never compare bank ids themselves.
//
// Reads are deliberately unrestricted: any admin may list entities across all
// banks for dashboards and auditing. Writes never cross a bank boundary.

// Reason explains why a scoping decision denied a mutation.
type Reason string

const (
	ReasonPermitted        Reason = "PERMITTED"
	ReasonBankMismatch     Reason = "BANK_MISMATCH"         // target row belongs to another bank
	ReasonSubjectMismatch  Reason = "SUBJECT_BANK_MISMATCH" // referenced donor/recipient belongs to another bank
	ReasonTargetMismatch   Reason = "TARGET_BANK_MISMATCH"  // new row's bank_id is not the actor's bank
	ReasonBankReassignment Reason = "BANK_REASSIGNMENT"     // attempt to move a row to another bank
)

// Decision is the outcome of a scoping check.
type Decision struct {
	Permitted bool
	Reason    Reason
}

func permit() Decision {
	return Decision{Permitted: true, Reason: ReasonPermitted}
}

func deny(r Reason) Decision {
	return Decision{Permitted: false, Reason: r}
}

// CanMutate gates update/delete of an existing row: the row's current bank_id
// must equal the acting admin's bank_id.
func CanMutate(actorBankID, entityBankID uint) Decision {
	if actorBankID != entityBankID {
		return deny(ReasonBankMismatch)
	}
	return permit()
}

// CanReassign gates a bank_id field update. An admin may only "reassign" an
// entity to their own bank, which keeps the field writable for wire
// compatibility while making cross-bank moves impossible.
func CanReassign(actorBankID, entityBankID, newBankID uint) Decision {
	if d := CanMutate(actorBankID, entityBankID); !d.Permitted {
		return d
	}
	if newBankID != actorBankID {
		return deny(ReasonBankReassignment)
	}
	return permit()
}

// CheckTriParty gates donation/request creation: the referenced donor or
// recipient, the acting admin, and the new row's bank_id must all agree.
// The subject check runs first so the caller can report which leg failed.
func CheckTriParty(subjectBankID, actorBankID, targetBankID uint) Decision {
	if subjectBankID != actorBankID {
		return deny(ReasonSubjectMismatch)
	}
	if targetBankID != actorBankID {
		return deny(ReasonTargetMismatch)
	}
	return permit()
}
