package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/flatvec/flatvec/blobstore"
)

const (
	keyAttr  = "name"
	dataAttr = "snapshot"

	tableWaitTimeout = 2 * time.Minute
)

// Client is the subset of the DynamoDB API used by Store.
// *dynamodb.Client satisfies it; tests may substitute a mock.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Store implements blobstore.Store backed by a DynamoDB table.
type Store struct {
	client Client
	table  string

	mu          sync.Mutex
	provisioned bool
}

// New creates a DynamoDB store using the default AWS configuration chain.
func New(ctx context.Context, table string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(dynamodb.NewFromConfig(cfg), table), nil
}

// NewStore creates a DynamoDB store with an existing client.
func NewStore(client Client, table string) *Store {
	return &Store{
		client: client,
		table:  table,
	}
}

// Put upserts the blob under name, creating the table first if needed.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			keyAttr:  &types.AttributeValueMemberS{Value: name},
			dataAttr: &types.AttributeValueMemberB{Value: data},
		},
	})
	return err
}

// Get returns the blob stored under name. A missing item or a table that has
// not been provisioned yet both report blobstore.ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	if resp.Item == nil {
		return nil, blobstore.ErrNotFound
	}

	attr, ok := resp.Item[dataAttr].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("item %q has no binary %q attribute", name, dataAttr)
	}
	return attr.Value, nil
}

// Delete removes the item. Absent items and missing tables are no-ops.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil
		}
		return err
	}
	return nil
}

// ensureTable lazily provisions the table on first write.
func (s *Store) ensureTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provisioned {
		return nil
	}

	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err == nil {
		s.provisioned = true
		return nil
	}

	var rnf *types.ResourceNotFoundException
	if !errors.As(err, &rnf) {
		return err
	}

	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyAttr), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyAttr), KeyType: types.KeyTypeHash},
		},
	})
	if err != nil {
		// Another writer may have created it concurrently.
		var riu *types.ResourceInUseException
		if !errors.As(err, &riu) {
			return fmt.Errorf("create table %q: %w", s.table, err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, tableWaitTimeout); err != nil {
		return fmt.Errorf("wait for table %q: %w", s.table, err)
	}

	s.provisioned = true
	return nil
}
