package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/docucare-api/internal/domain"
)

// PatientRepo provides typed DynamoDB operations for the patients table.
// PK: user_id — one profile per user account, so Put is a natural upsert.
type PatientRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPatientRepo(client *dynamodb.Client, tableName string) *PatientRepo {
	return &PatientRepo{client: client, tableName: tableName}
}

func (r *PatientRepo) Put(ctx context.Context, p *domain.Patient) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal patient: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PatientRepo) GetByUser(ctx context.Context, userID string) (*domain.Patient, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("patient not found: %w", domain.ErrNotFound)
	}
	var p domain.Patient
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) Scan(ctx context.Context) ([]domain.Patient, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var patients []domain.Patient
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	return err
}
