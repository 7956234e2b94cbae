package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Document is the store's envelope: the attribute payload plus the managed
// $-prefixed metadata fields.
type Document struct {
	ID          string
	Collection  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Permissions []string
	Data        map[string]any
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Data = make(map[string]any, len(raw))
	for k, v := range raw {
		switch k {
		case "$id":
			if err := json.Unmarshal(v, &d.ID); err != nil {
				return err
			}
		case "$collectionId":
			if err := json.Unmarshal(v, &d.Collection); err != nil {
				return err
			}
		case "$createdAt":
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			d.CreatedAt, _ = time.Parse(time.RFC3339, s)
		case "$updatedAt":
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			d.UpdatedAt, _ = time.Parse(time.RFC3339, s)
		case "$permissions":
			if err := json.Unmarshal(v, &d.Permissions); err != nil {
				return err
			}
		case "$databaseId", "$sequence":
			// not carried
		default:
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			d.Data[k] = val
		}
	}
	return nil
}

type DocumentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

// QueryEqual builds the store's equality filter syntax.
func QueryEqual(attribute, value string) string {
	q, _ := json.Marshal(map[string]any{
		"method":    "equal",
		"attribute": attribute,
		"values":    []string{value},
	})
	return string(q)
}

func RoleUser(userID string) string { return "user:" + userID }

func PermissionRead(role string) string   { return fmt.Sprintf("read(%q)", role) }
func PermissionUpdate(role string) string { return fmt.Sprintf("update(%q)", role) }
func PermissionDelete(role string) string { return fmt.Sprintf("delete(%q)", role) }

// OwnerPermissions is the standard owner-only grant attached to singleton
// documents at create time.
func OwnerPermissions(userID string) []string {
	role := RoleUser(userID)
	return []string{PermissionRead(role), PermissionUpdate(role), PermissionDelete(role)}
}

func documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
}

func (c *Client) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any, permissions []string) (*Document, error) {
	payload := map[string]any{
		"documentId": documentID,
		"data":       data,
	}
	if len(permissions) > 0 {
		payload["permissions"] = permissions
	}
	var doc Document
	if err := c.do(ctx, "POST", documentsPath(databaseID, collectionID), payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*DocumentList, error) {
	path := documentsPath(databaseID, collectionID)
	if len(queries) > 0 {
		params := make([]string, 0, len(queries))
		for _, q := range queries {
			params = append(params, "queries[]="+url.QueryEscape(q))
		}
		path += "?" + strings.Join(params, "&")
	}
	var list DocumentList
	if err := c.do(ctx, "GET", path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*Document, error) {
	var doc Document
	path := documentsPath(databaseID, collectionID) + "/" + documentID
	if err := c.do(ctx, "PATCH", path, map[string]any{"data": data}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	return c.do(ctx, "DELETE", documentsPath(databaseID, collectionID)+"/"+documentID, nil, nil)
}
