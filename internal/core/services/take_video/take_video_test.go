package takevideo

import (
	"context"
	"rewatch/internal/core/domain/handoff"
	"rewatch/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTakeVideoIsSingleUse(t *testing.T) {
	store := handoff.NewFakeStore()
	store.Data = &handoff.VideoData{ResourceID: "abc"}
	logger := logging.NewFakeLogger()
	service := New(logger, store)

	result, err := service.Run(context.Background(), Input{})
	require.Nil(t, err)
	require.Equal(t, "abc", result.Data.ResourceID)

	_, err = service.Run(context.Background(), Input{})
	require.ErrorIs(t, err, handoff.ErrNoVideoData)
	require.Equal(t, 0, logger.Count(logging.ERROR))
}
