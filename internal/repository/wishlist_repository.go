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

type WishlistRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewWishlistRepository(client *dynamodb.Client, tableName string) *WishlistRepository {
	return &WishlistRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *WishlistRepository) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            metadataKey(wishlistPK(userID)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrCartNotFound
	}

	var wl domain.Wishlist
	if err := attributevalue.UnmarshalMap(out.Item, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *WishlistRepository) Put(ctx context.Context, wl *domain.Wishlist) error {
	av, err := attributevalue.MarshalMap(wl)
	if err != nil {
		return fmt.Errorf("failed to marshal wishlist: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: wishlistPK(wl.UserID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put wishlist: %w", err)
	}

	return nil
}
