package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	pkgconfig "github.com/rnzluv/ecom/pkg/config"
)

// Single-table layout. Every aggregate lives under its own PK with a fixed
// METADATA sort key; orders additionally carry GSI1 keys for the per-user
// newest-first listing.
const (
	skMetadata = "METADATA"
	gsi1Name   = "GSI1"
)

func orderPK(orderID string) string   { return fmt.Sprintf("ORDER#%s", orderID) }
func cartPK(userID string) string     { return fmt.Sprintf("CART#%s", userID) }
func wishlistPK(userID string) string { return fmt.Sprintf("WISHLIST#%s", userID) }
func productPK(productID string) string {
	return fmt.Sprintf("PRODUCT#%s", productID)
}
func userPK(userID string) string { return fmt.Sprintf("USER#%s", userID) }

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func metadataKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: skMetadata},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)
