package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPublishWithoutClientIsNoop(t *testing.T) {
	Rdb = nil
	err := PublishGameAction(context.Background(), GameActionRecord{
		GameID:     uuid.New(),
		ActionType: "drew",
	})
	assert.NoError(t, err, "a disabled historian must swallow publishes")
}

func TestHistoryKeyFormat(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "gandalf:game:11111111-2222-3333-4444-555555555555:actions", historyKey(id))
}
