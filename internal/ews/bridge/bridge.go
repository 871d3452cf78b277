// Package bridge 通过 JSON-over-HTTP 桥接服务实现群件会话。
//
// 桥接服务负责与提供商的原生协议对话，本包只消费其已经
// 反序列化为 JSON 的对象，并还原成属性包供规范化层使用。
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mailgate/backend/internal/ews"
)

// Connector 面向桥接服务的会话连接器。
type Connector struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewConnector 创建桥接连接器。
func NewConnector(baseURL string, timeout time.Duration, logger *zap.Logger) *Connector {
	return &Connector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Connect 向桥接服务发起登录并建立会话。
func (c *Connector) Connect(ctx context.Context, endpoint, email, password string) (ews.Session, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.post(ctx, "/v1/sessions", map[string]string{
		"endpoint": endpoint,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("建立提供商会话失败: %w", err)
	}
	c.logger.Info("提供商会话已建立", zap.String("endpoint", endpoint))
	return &session{conn: c, token: out.Token}, nil
}

// post 发送一次 JSON 请求并解码响应。
func (c *Connector) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("编码请求失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("请求桥接服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解码桥接响应失败: %w", err)
	}
	return nil
}

// Error 表示桥接服务返回的非成功响应。
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("桥接服务返回 %d: %s", e.Status, e.Body)
}

// session 是基于桥接服务的 ews.Session 实现。
type session struct {
	conn  *Connector
	token string
}

type wireItem struct {
	Properties map[string]json.RawMessage `json:"properties"`
	Faults     map[string]string          `json:"faults,omitempty"`
}

func (s *session) BindItem(ctx context.Context, id ews.ItemID, props ews.PropertySet) (*ews.Item, error) {
	var out struct {
		Item *wireItem `json:"item"`
	}
	err := s.conn.post(ctx, "/v1/items/bind", map[string]any{
		"token":      s.token,
		"id":         id,
		"id_only":    props.IDOnly,
		"properties": props.Properties,
	}, &out)
	if err != nil {
		return nil, err
	}
	return decodeItem(out.Item)
}

func (s *session) BindAppointment(ctx context.Context, id ews.ItemID) (*ews.Item, error) {
	var out struct {
		Item *wireItem `json:"item"`
	}
	err := s.conn.post(ctx, "/v1/appointments/bind", map[string]any{
		"token": s.token,
		"id":    id,
	}, &out)
	if err != nil {
		return nil, err
	}
	return decodeItem(out.Item)
}

func (s *session) FindItems(ctx context.Context, folder ews.WellKnownFolder, view ews.PagedView, query string, props ews.PropertySet) ([]*ews.Item, error) {
	var out struct {
		Items []*wireItem `json:"items"`
	}
	err := s.conn.post(ctx, "/v1/items/find", map[string]any{
		"token":      s.token,
		"folder":     folder,
		"offset":     view.Offset,
		"limit":      view.Limit,
		"query":      query,
		"properties": props.Properties,
	}, &out)
	if err != nil {
		return nil, err
	}
	return decodeItems(out.Items)
}

func (s *session) FindCalendarItems(ctx context.Context, view ews.CalendarView, props ews.PropertySet) ([]*ews.Item, error) {
	var out struct {
		Items []*wireItem `json:"items"`
	}
	err := s.conn.post(ctx, "/v1/calendar/find", map[string]any{
		"token":      s.token,
		"start":      view.Start.Format(time.RFC3339),
		"end":        view.End.Format(time.RFC3339),
		"properties": props.Properties,
	}, &out)
	if err != nil {
		return nil, err
	}
	return decodeItems(out.Items)
}

func (s *session) ResolveNames(ctx context.Context, query string, details bool) ([]*ews.Resolution, error) {
	var out struct {
		Resolutions []struct {
			Mailbox ews.Mailbox `json:"mailbox"`
			Contact *wireItem   `json:"contact"`
		} `json:"resolutions"`
	}
	err := s.conn.post(ctx, "/v1/names/resolve", map[string]any{
		"token":   s.token,
		"query":   query,
		"details": details,
	}, &out)
	if err != nil {
		return nil, err
	}
	resolutions := make([]*ews.Resolution, 0, len(out.Resolutions))
	for _, r := range out.Resolutions {
		res := &ews.Resolution{Mailbox: r.Mailbox}
		if r.Contact != nil {
			item, err := decodeItem(r.Contact)
			if err != nil {
				return nil, err
			}
			res.Contact = item
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, nil
}

func (s *session) FindConversations(ctx context.Context, folder ews.WellKnownFolder, view ews.PagedView, query string) ([]*ews.Conversation, error) {
	var out struct {
		Conversations []*ews.Conversation `json:"conversations"`
	}
	err := s.conn.post(ctx, "/v1/conversations/find", map[string]any{
		"token":  s.token,
		"folder": folder,
		"offset": view.Offset,
		"limit":  view.Limit,
		"query":  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

func (s *session) GetConversationItems(ctx context.Context, ids []ews.ItemID) ([]*ews.ConversationItems, error) {
	var out struct {
		Conversations []struct {
			ID    ews.ItemID `json:"id"`
			Nodes []struct {
				Items []*wireItem `json:"items"`
			} `json:"nodes"`
		} `json:"conversations"`
	}
	err := s.conn.post(ctx, "/v1/conversations/items", map[string]any{
		"token": s.token,
		"ids":   ids,
	}, &out)
	if err != nil {
		return nil, err
	}
	batches := make([]*ews.ConversationItems, 0, len(out.Conversations))
	for _, c := range out.Conversations {
		batch := &ews.ConversationItems{ConversationID: c.ID}
		for _, n := range c.Nodes {
			items, err := decodeItems(n.Items)
			if err != nil {
				return nil, err
			}
			batch.Nodes = append(batch.Nodes, &ews.ConversationNode{Items: items})
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

func (s *session) DeleteItems(ctx context.Context, ids []ews.ItemID) error {
	return s.conn.post(ctx, "/v1/items/delete", map[string]any{
		"token": s.token,
		"ids":   ids,
	}, nil)
}

func (s *session) Reply(ctx context.Context, id ews.ItemID, body string, replyAll bool) error {
	return s.conn.post(ctx, "/v1/items/reply", map[string]any{
		"token":     s.token,
		"id":        id,
		"body":      body,
		"reply_all": replyAll,
	}, nil)
}

func (s *session) RespondToMeeting(ctx context.Context, id ews.ItemID, response ews.MeetingResponse) error {
	return s.conn.post(ctx, "/v1/meetings/respond", map[string]any{
		"token":    s.token,
		"id":       id,
		"response": response,
	}, nil)
}

func (s *session) LoadAttachment(ctx context.Context, id ews.ItemID, index int) (*ews.Attachment, error) {
	var out struct {
		Attachment *ews.Attachment `json:"attachment"`
	}
	err := s.conn.post(ctx, "/v1/attachments/load", map[string]any{
		"token": s.token,
		"id":    id,
		"index": index,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Attachment, nil
}

func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.conn.post(ctx, "/v1/sessions/close", map[string]any{"token": s.token}, nil)
}
