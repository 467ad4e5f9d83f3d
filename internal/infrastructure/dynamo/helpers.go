package dynamo

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/flowcup/registration-api/internal/domain"
)

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// requestKey is the GSI lookup key for a verification request. Access codes
// and identifiers must not contain "|".
func requestKey(class domain.VerificationClass, accessCode, identifier string) string {
	return strings.Join([]string{string(class), accessCode, identifier}, "|")
}
