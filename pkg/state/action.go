package state

import "classroom_backend/pkg/classroom"

// Action 状态迁移的封闭集合, 只有本包的类型实现
type Action interface {
	isAction()
}

// SetActiveUser 载入该用户的演示数据或默认数据, 导航回到首页
type SetActiveUser struct {
	User classroom.User
}

type SetActiveTab struct {
	Tab string
}

type SetSubjectSubTab struct {
	Tab SubjectSubTab
}

// SelectGroup 打开小组空间, nil 表示关闭
type SelectGroup struct {
	Group *classroom.ChatGroup
}

type ToggleSidebar struct{}

type SetPosts struct {
	Posts []classroom.Post
}

type SetGroups struct {
	Groups []classroom.ChatGroup
}

type SetNotifications struct {
	Notifications []classroom.Notification
}

// AddPost 新帖插到最前; 作业帖同时切到课业子页并插入 NotificationID 通知
type AddPost struct {
	Post           classroom.Post
	NotificationID string
}

type UpdatePost struct {
	PostID  string
	Content string
}

type CycleSimulationStatus struct {
	PostID string
}

// AddComment 追加到帖子, 设置了 ParentCommentID 时追加到该评论的回复
type AddComment struct {
	PostID          string
	ParentCommentID string
	Comment         classroom.Comment
}

// AddGroup 追加小组并插入分组通知, 没有名称或成员时忽略
type AddGroup struct {
	Group          classroom.ChatGroup
	NotificationID string
}

type AddNotification struct {
	Notification classroom.Notification
}

type MarkNotificationRead struct {
	ID string
}

type MarkAllNotificationsRead struct{}

// SendMessage 追加到 PeerID 对应的会话, 私信为对方用户 id, 群聊为小组 id
type SendMessage struct {
	PeerID  string
	Message classroom.Message
}

// OpenConversation 把 PeerID 会话中非 ViewerID 发送的消息标记已读
type OpenConversation struct {
	PeerID   string
	ViewerID string
}

type ToggleMessageReaction struct {
	PeerID    string
	MessageID string
	Type      string
	UserID    string
}

// RestoreBundle 仅当 UserID 仍是当前用户时覆盖非 nil 字段
type RestoreBundle struct {
	UserID string
	Bundle classroom.Bundle
}

func (SetActiveUser) isAction()            {}
func (SetActiveTab) isAction()             {}
func (SetSubjectSubTab) isAction()         {}
func (SelectGroup) isAction()              {}
func (ToggleSidebar) isAction()            {}
func (SetPosts) isAction()                 {}
func (SetGroups) isAction()                {}
func (SetNotifications) isAction()         {}
func (AddPost) isAction()                  {}
func (UpdatePost) isAction()               {}
func (CycleSimulationStatus) isAction()    {}
func (AddComment) isAction()               {}
func (AddGroup) isAction()                 {}
func (AddNotification) isAction()          {}
func (MarkNotificationRead) isAction()     {}
func (MarkAllNotificationsRead) isAction() {}
func (SendMessage) isAction()              {}
func (OpenConversation) isAction()         {}
func (ToggleMessageReaction) isAction()    {}
func (RestoreBundle) isAction()            {}
