package dbnotification

import (
	"context"
	"encoding/json"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/db/document"
	"sort"
)

const DocumentKey = "notifications"

type record struct {
	ID       string `json:"id"`
	ServerID uint32 `json:"serverId"`
}

// ServerIDs remembers which id the notification server gave to each alert
// still on screen, so a later run can close them.
type ServerIDs struct {
	document document.Document
}

func New(doc document.Document) *ServerIDs {
	if doc == nil {
		panic(e.NewNilArgumentError("document"))
	}
	return &ServerIDs{document: doc}
}

func (s *ServerIDs) Load(ctx context.Context) (map[notification.ID]uint32, error) {
	data, err := s.document.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[notification.ID]uint32)
	if len(data) == 0 {
		return ids, nil
	}
	records := make([]record, 0)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("could not decode notification ids: %w", err)
	}
	for _, r := range records {
		ids[notification.ID(r.ID)] = r.ServerID
	}
	return ids, nil
}

func (s *ServerIDs) Save(ctx context.Context, ids map[notification.ID]uint32) error {
	records := make([]record, 0, len(ids))
	for id, serverID := range ids {
		records = append(records, record{ID: string(id), ServerID: serverID})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.document.Rewrite(ctx, func([]byte) ([]byte, error) { return data, nil })
}
