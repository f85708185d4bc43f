package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rnzluv/ecom/internal/domain"
)

type CartRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewCartRepository(client *dynamodb.Client, tableName string) *CartRepository {
	return &CartRepository{
		client:    client,
		tableName: tableName,
	}
}

func cartItem(cart *domain.Cart) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart: %w", err)
	}

	av["PK"] = &types.AttributeValueMemberS{Value: cartPK(cart.UserID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	return av, nil
}

func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            metadataKey(cartPK(userID)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrCartNotFound
	}

	var cart domain.Cart
	if err := attributevalue.UnmarshalMap(out.Item, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Put persists the whole cart document. Concurrent writers on the same cart
// race read-modify-write; the document store only guarantees each single
// put is atomic.
func (r *CartRepository) Put(ctx context.Context, cart *domain.Cart) error {
	av, err := cartItem(cart)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put cart: %w", err)
	}

	return nil
}
