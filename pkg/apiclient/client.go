// Package apiclient 课堂后端 HTTP API 客户端
package apiclient

import (
	"bytes"
	"classroom_backend/pkg/classroom"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const DefaultBaseURL = "http://localhost:3001/api"

// APIError 非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound err 是否为后端 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health 只有后端返回 status "ok" 才算成功
func (c *Client) Health(ctx context.Context) error {
	var h HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return err
	}
	if h.Status != "ok" {
		return fmt.Errorf("backend status %q", h.Status)
	}
	return nil
}

// FetchBundle 用户从未保存时返回 classroom.ErrBundleNotFound
func (c *Client) FetchBundle(ctx context.Context, userID string) (classroom.Bundle, error) {
	var b classroom.Bundle
	err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(userID), nil, &b)
	if IsNotFound(err) {
		return classroom.Bundle{}, classroom.ErrBundleNotFound
	}
	if err != nil {
		return classroom.Bundle{}, err
	}
	return b, nil
}

func (c *Client) SaveBundle(ctx context.Context, userID string, b classroom.Bundle) error {
	return c.do(ctx, http.MethodPost, "/user/"+url.PathEscape(userID)+"/save", b, nil)
}

type MessageInput struct {
	ID         string `json:"id,omitempty"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	IsRead     bool   `json:"isRead"`
	ReplyToID  string `json:"replyToId,omitempty"`
}

// MessageInputFrom 转换为 POST /messages 的请求体
func MessageInputFrom(m classroom.Message) MessageInput {
	return MessageInput{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		GroupID:    m.GroupID,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		IsRead:     m.IsRead,
		ReplyToID:  m.ReplyToID,
	}
}

type StoredReaction struct {
	ID        uint   `json:"id"`
	MessageID string `json:"messageId"`
	Type      string `json:"type"`
	UserID    string `json:"userId"`
}

type StoredMessage struct {
	ID         string           `json:"id"`
	SenderID   string           `json:"senderId"`
	ReceiverID string           `json:"receiverId,omitempty"`
	GroupID    string           `json:"groupId,omitempty"`
	Content    string           `json:"content"`
	Timestamp  string           `json:"timestamp"`
	IsRead     bool             `json:"isRead"`
	ReplyToID  string           `json:"replyToId,omitempty"`
	Reactions  []StoredReaction `json:"reactions"`
}

// Tally 把逐用户的反应记录合并为客户端列表, 保持首次出现顺序
func (m StoredMessage) Tally() []classroom.MessageReaction {
	var out []classroom.MessageReaction
	index := map[string]int{}
	for _, r := range m.Reactions {
		i, ok := index[r.Type]
		if !ok {
			i = len(out)
			index[r.Type] = i
			out = append(out, classroom.MessageReaction{Type: r.Type})
		}
		out[i].Users = append(out[i].Users, r.UserID)
		out[i].Count++
	}
	return out
}

func (c *Client) CreateMessage(ctx context.Context, in MessageInput) (string, error) {
	var res struct {
		MessageID string `json:"messageId"`
	}
	if err := c.do(ctx, http.MethodPost, "/messages", in, &res); err != nil {
		return "", err
	}
	return res.MessageID, nil
}

func (c *Client) ListMessages(ctx context.Context, chatID string) ([]StoredMessage, error) {
	var out []StoredMessage
	if err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(chatID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleReaction 返回切换后反应是否存在
func (c *Client) ToggleReaction(ctx context.Context, messageID, reactionType, userID string) (bool, error) {
	body := map[string]string{"type": reactionType, "userId": userID}
	var res struct {
		Active bool `json:"active"`
	}
	if err := c.do(ctx, http.MethodPost, "/messages/"+url.PathEscape(messageID)+"/reaction", body, &res); err != nil {
		return false, err
	}
	return res.Active, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, messageID string) error {
	return c.do(ctx, http.MethodPatch, "/messages/"+url.PathEscape(messageID)+"/read", nil, nil)
}

type PostInput struct {
	ID               string `json:"id,omitempty"`
	AuthorID         string `json:"authorId"`
	Title            string `json:"title,omitempty"`
	Content          string `json:"content"`
	Timestamp        string `json:"timestamp"`
	Deadline         string `json:"deadline,omitempty"`
	SubjectID        string `json:"subjectId,omitempty"`
	IsAssignment     bool   `json:"isAssignment"`
	SimulationStatus string `json:"simulationStatus,omitempty"`
}

func PostInputFrom(p classroom.Post) PostInput {
	return PostInput{
		ID:               p.ID,
		AuthorID:         p.Author.ID,
		Title:            p.Title,
		Content:          p.Content,
		Timestamp:        p.Timestamp,
		Deadline:         p.Deadline,
		SubjectID:        p.SubjectID,
		IsAssignment:     p.IsAssignment,
		SimulationStatus: string(p.SimulationStatus),
	}
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (string, error) {
	var res struct {
		PostID string `json:"postId"`
	}
	if err := c.do(ctx, http.MethodPost, "/posts", in, &res); err != nil {
		return "", err
	}
	return res.PostID, nil
}

type NotificationInput struct {
	ID          string `json:"id,omitempty"`
	UserID      string `json:"userId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
	IsRead      bool   `json:"isRead"`
	Link        string `json:"link,omitempty"`
}

// NotificationInputFrom 把 n 发给 userID
func NotificationInputFrom(userID string, n classroom.Notification) NotificationInput {
	return NotificationInput{
		ID:          n.ID,
		UserID:      userID,
		Type:        string(n.Type),
		Title:       n.Title,
		Description: n.Description,
		Timestamp:   n.Timestamp,
		IsRead:      n.IsRead,
		Link:        n.Link,
	}
}

func (c *Client) CreateNotification(ctx context.Context, in NotificationInput) (string, error) {
	var res struct {
		NotificationID string `json:"notificationId"`
	}
	if err := c.do(ctx, http.MethodPost, "/notifications", in, &res); err != nil {
		return "", err
	}
	return res.NotificationID, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// Upload 以 multipart 字段 "file" 上传单个文件, 返回存储后的附件
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (classroom.MessageAttachment, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return classroom.MessageAttachment{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return classroom.MessageAttachment{}, err
	}
	if err := w.Close(); err != nil {
		return classroom.MessageAttachment{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload", &buf)
	if err != nil {
		return classroom.MessageAttachment{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out classroom.MessageAttachment
	if err := c.send(req, &out); err != nil {
		return classroom.MessageAttachment{}, err
	}
	return out, nil
}
