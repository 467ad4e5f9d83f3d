package domain

import "time"

// RegistrationStatus is the lifecycle of a submitted application.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationDeclined RegistrationStatus = "declined"
)

// DeclineReasonOther is recorded when the operator declines without a reason.
const DeclineReasonOther = "other"

// Registration is a final tournament-entry application. IDVerified and
// EmailVerified snapshot the matching verification records at submission
// time and are never recomputed afterwards.
//
// Password holds whatever the configured credential sink produced; it must
// not be written to logs.
type Registration struct {
	ID            string             `json:"id" dynamodbav:"registration_id"`
	AccessCode    string             `json:"accessCode" dynamodbav:"access_code"`
	IngameID      string             `json:"ingameId" dynamodbav:"ingame_id"`
	Email         string             `json:"email" dynamodbav:"email"`
	Password      *string            `json:"password" dynamodbav:"password"`
	IDCode        *string            `json:"idCode" dynamodbav:"id_code"`
	EmailCode     *string            `json:"emailCode" dynamodbav:"email_code"`
	IDVerified    bool               `json:"idVerified" dynamodbav:"id_verified"`
	EmailVerified bool               `json:"emailVerified" dynamodbav:"email_verified"`
	Status        RegistrationStatus `json:"status" dynamodbav:"status"`
	DeclineReason *string            `json:"declineReason" dynamodbav:"decline_reason"`
	AdminNote     *string            `json:"adminNote" dynamodbav:"admin_note"`
	Slot          *string            `json:"slot" dynamodbav:"slot"`
	Link          *string            `json:"link" dynamodbav:"link"`
	CreatedAt     time.Time          `json:"createdAt" dynamodbav:"created_at"`
}
