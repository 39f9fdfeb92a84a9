package classroom

// Fixtures 用户 id 到内置演示数据, 没有登记的用户使用 DefaultBundle
type Fixtures map[string]Bundle

// For 返回 userID 登记的数据或全局默认数据
func (f Fixtures) For(userID string) Bundle {
	if b, ok := f[userID]; ok {
		return b
	}
	return DefaultBundle()
}

// Has userID 是否有登记的数据
func (f Fixtures) Has(userID string) bool {
	_, ok := f[userID]
	return ok
}

// DefaultFixtures 为 u7 登记教师视图, 学生都看到默认数据
func DefaultFixtures() Fixtures {
	teacher := Teacher()
	return Fixtures{
		teacher.ID: {
			Posts:  DefaultPosts(),
			Groups: DefaultGroups(),
			Notifications: []Notification{
				{
					ID:          "n_t1",
					Type:        NotificationMessage,
					Title:       "新着メッセージ",
					Description: "Aさんから提出物について質問が届いています。",
					Timestamp:   "10分前",
					Link:        "chat",
				},
			},
			ChatHistories: ChatHistories{
				"u1": {
					{ID: "dm_u7_1", SenderID: teacher.ID, ReceiverID: "u1", Content: "提出物の期限について相談がありますか？", Timestamp: "昨日", IsRead: true},
				},
			},
		},
	}
}

func DefaultBundle() Bundle {
	return Bundle{
		Posts:         DefaultPosts(),
		Groups:        DefaultGroups(),
		Notifications: DefaultNotifications(),
		ChatHistories: DefaultChatHistories(),
	}
}

func DefaultPosts() []Post {
	teacher := Teacher()
	return []Post{
		{
			ID:               "p1",
			SubjectID:        "s1",
			IsAssignment:     true,
			Title:            "読書感想文の提出",
			Author:           teacher,
			Content:          "夏目漱石「こころ」を読んで、800字程度でまとめてください。",
			Timestamp:        "2024/05/10",
			Deadline:         "5月20日",
			Reactions:        []PostReaction{},
			Comments:         []Comment{},
			Attachments:      []Attachment{},
			SimulationStatus: StatusPending,
		},
		{
			ID:               "p2",
			SubjectID:        "s2",
			IsAssignment:     true,
			Title:            "週末課題：2次関数",
			Author:           teacher,
			Content:          "問題集P.30〜35を解いて提出してください。",
			Timestamp:        "2024/05/12",
			Deadline:         "5月15日",
			Reactions:        []PostReaction{},
			Comments:         []Comment{},
			SimulationStatus: StatusOverdue,
		},
	}
}

func DefaultGroups() []ChatGroup {
	return []ChatGroup{
		{ID: "G1", Name: "国語 A班", Members: []string{"u1", "u2", "u3"}, SubjectID: "s1"},
	}
}

func DefaultNotifications() []Notification {
	return []Notification{
		{ID: "n1", Type: NotificationAssignment, Title: "新しい課題", Description: "鈴木先生が「読書感想文」を投稿しました。", Timestamp: "5分前", Link: "subject-s1"},
		{ID: "n2", Type: NotificationMessage, Title: "新着メッセージ", Description: "BさんからDMが届いています。", Timestamp: "15分前", Link: "chat"},
		{ID: "n3", Type: NotificationDeadline, Title: "期限が迫っています", Description: "数学IAの課題提出まであと3時間です。", Timestamp: "1時間前", Link: "todo"},
		{ID: "n4", Type: NotificationGroup, Title: "班への配属", Description: "国語 A班に配属されました。", Timestamp: "2時間前", IsRead: true, Link: "subject-s1"},
	}
}

// DefaultChatHistories u1 视角的会话列表
func DefaultChatHistories() ChatHistories {
	return ChatHistories{
		"G1": {
			{ID: "g1_m1", SenderID: "u2", GroupID: "G1", Content: "現代文の課題、進んでる？", Timestamp: "10:00", IsRead: true},
			{ID: "g1_m2", SenderID: "u3", GroupID: "G1", Content: "半分くらい終わったよ！", Timestamp: "10:05", IsRead: true,
				Reactions: []MessageReaction{{Type: string(ReactionCheck), Count: 1, Users: []string{"u2"}}}},
		},
		"u2": {
			{ID: "dm_u2_1", SenderID: "u2", Content: "Aさん、さっきの授業のノート見せてくれない？", Timestamp: "09:30"},
		},
		"u3": {
			{ID: "dm_u3_1", SenderID: "u3", Content: "今日の放課後、図書室行く？", Timestamp: "08:45"},
		},
		"u7": {
			{ID: "dm_u7_1", SenderID: "u7", Content: "提出物の期限について相談がありますか？", Timestamp: "昨日", IsRead: true},
		},
	}
}
