package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/docucare-api/internal/domain"
)

// AppointmentRepo provides typed DynamoDB operations for the appointments table.
type AppointmentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAppointmentRepo(client *dynamodb.Client, tableName string) *AppointmentRepo {
	return &AppointmentRepo{client: client, tableName: tableName}
}

func (r *AppointmentRepo) Put(ctx context.Context, a *domain.Appointment) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal appointment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AppointmentRepo) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("appointment_id", appointmentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("appointment not found: %w", domain.ErrNotFound)
	}
	var a domain.Appointment
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser returns every appointment booked by the given patient account.
func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.queryGSI(ctx, "user_id-index", "user_id", userID)
}

// ListByDoctor returns every appointment assigned to the given doctor.
func (r *AppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	return r.queryGSI(ctx, "doctor_id-index", "doctor_id", doctorID)
}

func (r *AppointmentRepo) Scan(ctx context.Context) ([]domain.Appointment, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var appts []domain.Appointment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("appointment_id", appointmentID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *AppointmentRepo) queryGSI(ctx context.Context, index, attr, value string) ([]domain.Appointment, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var appts []domain.Appointment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}
