// Package classroom 客户端 store, 同步器和 API 客户端共用的数据结构, JSON 标签与存储格式一致
package classroom

import "errors"

// ErrBundleNotFound 远程或本地没有该用户的快照
var ErrBundleNotFound = errors.New("bundle not found")

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   Role   `json:"role"`
	Group  string `json:"group,omitempty"`
}

type Subject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Subtitle string `json:"subtitle,omitempty"`
}

type AttachmentType string

const (
	AttachmentDoc   AttachmentType = "doc"
	AttachmentSlide AttachmentType = "slide"
	AttachmentSheet AttachmentType = "sheet"
	AttachmentPPT   AttachmentType = "ppt"
	AttachmentPDF   AttachmentType = "pdf"
	AttachmentFile  AttachmentType = "file"
)

type Attachment struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	URL   string         `json:"url"`
	Type  AttachmentType `json:"type"`
}

// Comment 回复只有一层
type Comment struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	Replies   []Comment `json:"replies"`
}

type SimulationStatus string

const (
	StatusPending   SimulationStatus = "pending"
	StatusOverdue   SimulationStatus = "overdue"
	StatusSubmitted SimulationStatus = "submitted"
	StatusLate      SimulationStatus = "late"
)

// Valid 只接受四个已知状态, 空值不算
func (s SimulationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusSubmitted, StatusLate:
		return true
	}
	return false
}

// Next 手动切换提交状态; 空值按 pending 处理, 未知值重置为 pending
func (s SimulationStatus) Next() SimulationStatus {
	switch s {
	case StatusPending, "":
		return StatusOverdue
	case StatusOverdue:
		return StatusSubmitted
	case StatusSubmitted:
		return StatusLate
	default:
		return StatusPending
	}
}

type ReactionType string

const (
	ReactionHeart    ReactionType = "heart"
	ReactionThumbsUp ReactionType = "thumbsup"
	ReactionCheck    ReactionType = "check"
)

type PostReaction struct {
	Type   ReactionType `json:"type"`
	Count  int          `json:"count"`
	Active bool         `json:"active"`
}

type Post struct {
	ID                string           `json:"id"`
	Author            User             `json:"author"`
	Title             string           `json:"title,omitempty"`
	Content           string           `json:"content"`
	Timestamp         string           `json:"timestamp"`
	Deadline          string           `json:"deadline,omitempty"`
	Likes             int              `json:"likes"`
	Reactions         []PostReaction   `json:"reactions"`
	Comments          []Comment        `json:"comments"`
	Attachments       []Attachment     `json:"attachments"`
	SubjectID         string           `json:"subjectId,omitempty"`
	GroupID           string           `json:"groupId,omitempty"`
	IsAssignment      bool             `json:"isAssignment,omitempty"`
	IsGroupAssignment bool             `json:"isGroupAssignment,omitempty"`
	SimulationStatus  SimulationStatus `json:"simulationStatus,omitempty"`
}

type ChatGroup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Members     []string `json:"members"`
	SubjectID   string   `json:"subjectId"`
	Description string   `json:"description,omitempty"`
}

// HasMember userID 是否是组员
func (g ChatGroup) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

type MessageReaction struct {
	Type  string   `json:"type"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

type MessageAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type Message struct {
	ID          string              `json:"id"`
	SenderID    string              `json:"senderId"`
	ReceiverID  string              `json:"receiverId,omitempty"`
	GroupID     string              `json:"groupId,omitempty"`
	Content     string              `json:"content"`
	Timestamp   string              `json:"timestamp"`
	IsRead      bool                `json:"isRead"`
	Reactions   []MessageReaction   `json:"reactions"`
	Attachments []MessageAttachment `json:"attachments"`
	ReplyToID   string              `json:"replyToId,omitempty"`
}

type NotificationType string

const (
	NotificationMessage    NotificationType = "message"
	NotificationAssignment NotificationType = "assignment"
	NotificationDeadline   NotificationType = "deadline"
	NotificationGroup      NotificationType = "group"
)

type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Timestamp   string           `json:"timestamp"`
	IsRead      bool             `json:"isRead"`
	Link        string           `json:"link,omitempty"`
}

// ChatHistories 对方用户 id 或小组 id 到有序消息
type ChatHistories map[string][]Message

// Bundle 每个用户的快照, 远程和本地都存; 恢复时 nil 字段表示缺失, 保留当前值
type Bundle struct {
	Posts         []Post         `json:"posts"`
	Groups        []ChatGroup    `json:"groups"`
	Notifications []Notification `json:"notifications"`
	ChatHistories ChatHistories  `json:"chatHistories"`
}

// UnreadCount 未读通知数
func (b Bundle) UnreadCount() int {
	n := 0
	for _, item := range b.Notifications {
		if !item.IsRead {
			n++
		}
	}
	return n
}
