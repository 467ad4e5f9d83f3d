package domain

import "time"

// VerificationClass distinguishes the two parallel verification collections:
// in-game ID checks and email checks.
type VerificationClass string

const (
	ClassID    VerificationClass = "id"
	ClassEmail VerificationClass = "email"
)

// VerificationStatus is the lifecycle of a verification request.
// Transitions: pending → code_sent → valid | invalid. The two terminal
// statuses are operator decisions and are never downgraded by client calls.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationCodeSent VerificationStatus = "code_sent"
	VerificationValid    VerificationStatus = "valid"
	VerificationInvalid  VerificationStatus = "invalid"
)

// Terminal reports whether the status is a final operator decision.
func (s VerificationStatus) Terminal() bool {
	return s == VerificationValid || s == VerificationInvalid
}

// VerificationRequest tracks one attempt to prove control of an identifier
// (an in-game ID or an email address) behind a given access code.
// At most one record exists per (class, access code, identifier); repeated
// requests upsert into the same record. Records are never deleted.
type VerificationRequest struct {
	ID         string             `json:"id" dynamodbav:"request_id"`
	Class      VerificationClass  `json:"-" dynamodbav:"class"`
	AccessCode string             `json:"accessCode" dynamodbav:"access_code"`
	IngameID   string             `json:"ingameId" dynamodbav:"ingame_id"`
	Email      string             `json:"email" dynamodbav:"email"`
	Status     VerificationStatus `json:"status" dynamodbav:"status"`
	LastCode   *string            `json:"lastCode" dynamodbav:"last_code"`
	LastCodeAt *time.Time         `json:"lastCodeAt" dynamodbav:"last_code_at"`
	CreatedAt  time.Time          `json:"createdAt" dynamodbav:"created_at"`
}

// Identifier returns the value being verified for the record's class:
// the in-game ID for ClassID, the email address for ClassEmail.
func (v *VerificationRequest) Identifier() string {
	if v.Class == ClassEmail {
		return v.Email
	}
	return v.IngameID
}
