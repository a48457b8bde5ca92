// Copyright 2024 Google LLC

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package containeranalysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
)

// occurrenceTopicID is the well-known topic Container Analysis publishes
// occurrence change notifications to.
const occurrenceTopicID = "container-analysis-occurrences-v1"

// createOccurrenceSubscription subscribes to the occurrence notification
// topic. The topic must already exist in the project, which happens when the
// Container Analysis API is enabled.
func createOccurrenceSubscription(ctx context.Context, subscriptionID, projectID string) error {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("pubsub.NewClient: %w", err)
	}
	defer client.Close()

	topic := client.Topic(occurrenceTopicID)
	if _, err := client.CreateSubscription(ctx, subscriptionID, pubsub.SubscriptionConfig{Topic: topic}); err != nil {
		return fmt.Errorf("CreateSubscription: %w", err)
	}
	return nil
}

// occurrencePubsub listens on a subscription for the given duration and
// returns how many occurrence notifications arrived.
func occurrencePubsub(ctx context.Context, subscriptionID string, timeout time.Duration, projectID string) (int, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("pubsub.NewClient: %w", err)
	}
	defer client.Close()

	var mu sync.Mutex
	count := 0

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	sub := client.Subscription(subscriptionID)
	err = sub.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
		mu.Lock()
		count++
		mu.Unlock()
		msg.Ack()
	})
	if err != nil && ctx.Err() != context.DeadlineExceeded {
		return 0, fmt.Errorf("Receive: %w", err)
	}
	return count, nil
}

// deleteOccurrenceSubscription removes a subscription created by
// createOccurrenceSubscription.
func deleteOccurrenceSubscription(ctx context.Context, subscriptionID, projectID string) error {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("pubsub.NewClient: %w", err)
	}
	defer client.Close()

	if err := client.Subscription(subscriptionID).Delete(ctx); err != nil {
		return fmt.Errorf("Subscription.Delete: %w", err)
	}
	return nil
}
