package game

import (
	"context"
	"time"

	"github.com/zaid5678/gandalf/internal/cache"
)

// logAction appends one entry to the game's Redis action history. The
// publish runs asynchronously and is a no-op when the historian is
// disabled. Assumes lock is held (for the action index).
func (s *GandalfSession) logAction(actor, actionType string, payload map[string]interface{}) {
	s.actionIndex++
	record := cache.GameActionRecord{
		GameID:        s.ID,
		GameName:      s.Name,
		ActionIndex:   s.actionIndex,
		Actor:         actor,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}

	go func(rec cache.GameActionRecord) {
		if cache.Rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			s.log.WithError(err).WithField("action", rec.ActionType).Error("failed publishing action to redis")
		}
	}(record)
}
