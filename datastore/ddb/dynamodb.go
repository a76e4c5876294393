/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/automapper/errors"
)

// EntityTypeAttribute is written on every item so List can select one entity
// type from a shared table.
const EntityTypeAttribute = "EntityType"

// Client is the subset of *dynamodb.Client the store uses.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[T] on a single DynamoDB table.
type DynamodbDataStore[T any] struct {
	client     Client
	tableName  string
	keys       KeyTemplate
	entityType string
	logger     *slog.Logger
}

// Option configures a DynamodbDataStore.
type Option func(*options)

type options struct {
	entityType string
	logger     *slog.Logger
}

// WithEntityType overrides the EntityType attribute value; it defaults to T's name.
func WithEntityType(name string) Option {
	return func(o *options) { o.entityType = name }
}

// WithLogger sets the logger for store operations.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a store for T over an existing client.
func New[T any](client Client, tableName string, keys KeyTemplate, opts ...Option) (*DynamodbDataStore[T], error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "is required")
	}

	o := options{
		entityType: reflect.TypeOf((*T)(nil)).Elem().Name(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &DynamodbDataStore[T]{
		client:     client,
		tableName:  tableName,
		keys:       keys,
		entityType: o.entityType,
		logger:     o.logger,
	}, nil
}

// NewDynamodbDataStore constructs a store for T with a client built from static credentials.
func NewDynamodbDataStore[T any](ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, awsDDBTableName string, keys KeyTemplate, opts ...Option) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	store, err := New[T](client, awsDDBTableName, keys, opts...)
	if err != nil {
		return nil, err
	}
	store.logger.Info("DynamoDB store initialized", "table", awsDDBTableName, "region", awsRegion, "entityType", store.entityType)
	return store, nil
}

// GetOne retrieves a single item using a string key expanded through the key template.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := buildKeyFromExpanded(expandStringKey(d.keys, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, errors.NewNotFoundError(d.entityType, key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores the entity, adding the expanded key attributes and EntityType.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(d.keys, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return err
	}

	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: d.entityType}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}

	d.logger.Debug("item stored", "table", d.tableName, "pk", expanded["PK"])
	return nil
}

// List scans the table for items of this store's entity type, ordered by PK.
func (d *DynamodbDataStore[T]) List(ctx context.Context) ([]T, error) {
	paginator := sdk.NewScanPaginator(d.client, &sdk.ScanInput{
		TableName:        aws.String(d.tableName),
		FilterExpression: aws.String("#et = :et"),
		ExpressionAttributeNames: map[string]string{
			"#et": EntityTypeAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":et": &types.AttributeValueMemberS{Value: d.entityType},
		},
	})

	type keyed struct {
		pk   string
		item T
	}
	var rows []keyed
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Scan failed: %w", err)
		}
		for _, raw := range page.Items {
			var item T
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			var pk string
			if attr, ok := raw["PK"].(*types.AttributeValueMemberS); ok {
				pk = attr.Value
			}
			rows = append(rows, keyed{pk: pk, item: item})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].pk < rows[j].pk })
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out, nil
}

// Delete removes an item using a string key. Deleting a missing item is a NotFoundError.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := buildKeyFromExpanded(expandStringKey(d.keys, key))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	out, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    aws.String(d.tableName),
		Key:          keyMap,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		return errors.NewNotFoundError(d.entityType, key)
	}
	return nil
}
