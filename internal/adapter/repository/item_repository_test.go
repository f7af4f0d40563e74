package repository_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetmate/internal/adapter/repository"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/infrastructure/gateway"
)

func TestItemRepository_SyncActionReadsSyncedFlag(t *testing.T) {
	replies := map[string]string{
		"a-1": `{"item_id":"a-1","target":"jira","external_id":"MEET-1"}`,
		"a-2": `{"item_id":"a-2","target":"jira","synced":false}`,
		"a-3": `{"item_id":"a-3","target":"jira","synced":true,"external_id":"MEET-3"}`,
		"a-4": `{"item_id":"a-4","target":"jira","error":"Project is archived"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/actions/"), "/sync")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, replies[id])
	}))
	t.Cleanup(srv.Close)
	client, err := gateway.New(gateway.Options{BaseURL: srv.URL, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	repo := repository.NewItemRepository(client)

	want := map[string]bool{"a-1": true, "a-2": false, "a-3": true, "a-4": false}
	for id, synced := range want {
		res, err := repo.SyncAction(context.Background(), id, entities.SyncJira)
		require.NoError(t, err, id)
		assert.Equal(t, synced, res.Synced, id)
	}
}
