package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRepository stores leads in a DynamoDB table keyed by "id".
// DynamoDB does not generate keys, so the repository assigns id and created_at.
type DynamoRepository struct {
	client dynamoAPI
	table  string
	now    func() time.Time
}

// NewDynamoRepository creates a DynamoDB-backed repository.
func NewDynamoRepository(client dynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{
		client: client,
		table:  strings.TrimSpace(table),
		now:    time.Now,
	}
}

// Create writes one item. The condition guards against overwriting an existing id.
func (r *DynamoRepository) Create(ctx context.Context, req *SubmitLeadRequest) (*Lead, error) {
	if !r.Configured() {
		return nil, ErrStorageNotConfigured
	}
	lead := newLead(req)
	lead.ID = uuid.New().String()
	lead.CreatedAt = r.now().UTC()

	item, err := attributevalue.MarshalMap(lead)
	if err != nil {
		return nil, fmt.Errorf("leads: marshal item: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: put item failed: %w", err)
	}
	return lead, nil
}

// Configured reports whether a client and table name were supplied.
func (r *DynamoRepository) Configured() bool {
	return r != nil && r.client != nil && r.table != ""
}
