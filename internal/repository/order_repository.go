package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rnzluv/ecom/internal/domain"
)

type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewOrderRepository(client *dynamodb.Client, tableName string) *OrderRepository {
	return &OrderRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *OrderRepository) orderItem(order *domain.Order) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	av["PK"] = &types.AttributeValueMemberS{Value: orderPK(order.ID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["GSI1PK"] = &types.AttributeValueMemberS{Value: userPK(order.UserID)}
	av["GSI1SK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("ORDER#%s", order.CreatedAt.Format("2006-01-02T15:04:05Z"))}
	return av, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	av, err := r.orderItem(order)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put order: %w", err)
	}

	return nil
}

// CreateWithCart writes the order and the caller's reconciled cart in one
// transaction, so a placed order and its consumed cart lines can never be
// observed half-applied.
func (r *OrderRepository) CreateWithCart(ctx context.Context, order *domain.Order, cart *domain.Cart) error {
	orderAV, err := r.orderItem(order)
	if err != nil {
		return err
	}
	cartAV, err := cartItem(cart)
	if err != nil {
		return err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: orderAV}},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: cartAV}},
		},
	})
	if err != nil {
		return fmt.Errorf("checkout transaction failed: %w", err)
	}

	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            metadataKey(orderPK(id)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrOrderNotFound
	}

	var order domain.Order
	if err := attributevalue.UnmarshalMap(out.Item, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Update overwrites the whole order document. Status transitions are the
// only mutation path, so last-writer-wins is acceptable here.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	av, err := r.orderItem(order)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 metadataKey(orderPK(id)),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders newest first via GSI1
// (GSI1PK=USER#id, GSI1SK=ORDER#createdAt).
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND begins_with(GSI1SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: userPK(userID)},
			":sk": &types.AttributeValueMemberS{Value: "ORDER#"},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return unmarshalOrders(out.Items)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("begins_with(PK, :pk) AND SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "ORDER#"},
			":sk": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	orders, err := unmarshalOrders(out.Items)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func unmarshalOrders(items []map[string]types.AttributeValue) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		var order domain.Order
		if err := attributevalue.UnmarshalMap(item, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
