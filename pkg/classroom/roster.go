package classroom

const avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// Users 演示名单: 六名学生和一名教师
var Users = []User{
	{ID: "u1", Name: "Aさん", Avatar: avatarBase + "A", Role: RoleStudent},
	{ID: "u2", Name: "Bさん", Avatar: avatarBase + "B", Role: RoleStudent},
	{ID: "u3", Name: "Cさん", Avatar: avatarBase + "C", Role: RoleStudent},
	{ID: "u4", Name: "Dさん", Avatar: avatarBase + "D", Role: RoleStudent},
	{ID: "u5", Name: "Eさん", Avatar: avatarBase + "E", Role: RoleStudent},
	{ID: "u6", Name: "Fさん", Avatar: avatarBase + "F", Role: RoleStudent},
	{ID: "u7", Name: "鈴木先生", Avatar: avatarBase + "Sheldon&glassesProbability=100&mouth=smile&top=shortHair&facialHairProbability=0", Role: RoleTeacher},
}

var Subjects = []Subject{
	{ID: "s1", Name: "国語（現代文）", Color: "#e8f0fe", Icon: "国"},
	{ID: "s2", Name: "数学IA", Color: "#fef7e0", Icon: "数"},
	{ID: "s3", Name: "英語コミュニケーション", Color: "#e4f7fb", Icon: "英"},
	{ID: "s4", Name: "地理総合", Color: "#f3e8fd", Icon: "地"},
	{ID: "s5", Name: "生物基礎", Color: "#e6f4ea", Icon: "生"},
}

// DefaultSubjectID 不在课程页发帖时使用
const DefaultSubjectID = "s1"

// FindUser 在名单中查找用户
func FindUser(id string) (User, bool) {
	for _, u := range Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func FindSubject(id string) (Subject, bool) {
	for _, s := range Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// Teacher 名单中的第一位教师
func Teacher() User {
	for _, u := range Users {
		if u.Role == RoleTeacher {
			return u
		}
	}
	return User{}
}

// Students 按名单顺序返回所有学生
func Students() []User {
	out := make([]User, 0, len(Users))
	for _, u := range Users {
		if u.Role == RoleStudent {
			out = append(out, u)
		}
	}
	return out
}
