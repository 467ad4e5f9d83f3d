package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/flowcup/registration-api/internal/domain"
	"github.com/flowcup/registration-api/internal/pkg/id"
)

// VerificationRepo stores verification requests in DynamoDB.
// PK: request_id. The request_key attribute (class|accessCode|identifier)
// backs the `request_key-index` GSI used for upsert-by-key lookups.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

func (r *VerificationRepo) Put(ctx context.Context, v *domain.VerificationRequest) error {
	if v.ID == "" {
		v.ID = id.New()
	}
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification request: %w", err)
	}
	item["request_key"] = &types.AttributeValueMemberS{
		Value: requestKey(v.Class, v.AccessCode, v.Identifier()),
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VerificationRepo) FindByKey(ctx context.Context, class domain.VerificationClass, accessCode, identifier string) (*domain.VerificationRequest, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("request_key-index"),
		KeyConditionExpression: aws.String("request_key = :k"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":k": &types.AttributeValueMemberS{Value: requestKey(class, accessCode, identifier)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification request not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationRequest
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepo) FindByID(ctx context.Context, class domain.VerificationClass, id string) (*domain.VerificationRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("request_id", id),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification request not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationRequest
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	if v.Class != class {
		return nil, fmt.Errorf("verification request not found: %w", domain.ErrNotFound)
	}
	return &v, nil
}

// List scans the table for one class. The collections stay small (one entry
// per invited player), so a filtered scan is acceptable here.
func (r *VerificationRepo) List(ctx context.Context, class domain.VerificationClass) ([]domain.VerificationRequest, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#c = :c"),
		ExpressionAttributeNames: map[string]string{
			"#c": "class",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: string(class)},
		},
	})
	if err != nil {
		return nil, err
	}
	var list []domain.VerificationRequest
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &list); err != nil {
		return nil, err
	}
	return list, nil
}
