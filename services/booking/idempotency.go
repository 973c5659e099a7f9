package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"joeyjob/models"
	"joeyjob/utils"

	"github.com/go-redis/redis/v8"
)

// SubmissionGuard is the at-most-once guard around external job creation.
// Claiming a key succeeds exactly once per submission attempt; a resubmission
// after a transient failure finds the key already claimed and is answered
// with the recorded booking instead of creating a second external job.
type SubmissionGuard struct {
	Redis *redis.Client
}

// DeriveKey builds a deterministic idempotency token for a submission when
// the client did not supply one: same org, service, slot and customer email
// hash to the same key.
func DeriveKey(sub *models.BookingSubmission, customerEmail string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%s",
		sub.OrganizationID, sub.ServiceID, sub.Date, sub.Time, customerEmail)))
	return hex.EncodeToString(sum[:16])
}

// Claim attempts to take ownership of the submission key. It returns
// (true, "") when this attempt is the first, or (false, bookingID) when a
// prior attempt already committed a booking under this key.
func (g *SubmissionGuard) Claim(ctx context.Context, key string) (bool, string, error) {
	if g == nil || g.Redis == nil {
		return true, "", nil
	}
	ok, err := g.Redis.SetNX(ctx, utils.GuardKeyPrefix+key, "", utils.GuardTTL).Result()
	if err != nil {
		return false, "", fmt.Errorf("claiming submission guard: %w", err)
	}
	if ok {
		return true, "", nil
	}
	bookingID, err := g.Redis.Get(ctx, utils.GuardKeyPrefix+key).Result()
	if err != nil {
		return false, "", fmt.Errorf("reading submission guard: %w", err)
	}
	return false, bookingID, nil
}

// Commit records the booking that this key produced, so duplicate
// submissions can be answered with it.
func (g *SubmissionGuard) Commit(ctx context.Context, key, bookingID string) error {
	if g == nil || g.Redis == nil {
		return nil
	}
	return g.Redis.Set(ctx, utils.GuardKeyPrefix+key, bookingID, utils.GuardTTL).Err()
}

// Release frees the key after a failed attempt so the customer can retry the
// submission once the underlying problem is fixed.
func (g *SubmissionGuard) Release(ctx context.Context, key string) {
	if g == nil || g.Redis == nil {
		return
	}
	if err := g.Redis.Del(ctx, utils.GuardKeyPrefix+key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to release submission guard: " + err.Error())
	}
}
