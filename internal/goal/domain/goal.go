package domain

// Goal 目標文件
type Goal struct {
	ID        string `bson:"_id" json:"id"`
	UserID    string `bson:"userId" json:"userId"`
	GoalName  string `bson:"goalName" json:"goalName"`
	Target    int    `bson:"target" json:"target"`
	Progress  int    `bson:"progress" json:"progress"`
	Completed bool   `bson:"completed" json:"completed"`
	CreatedAt string `bson:"createdAt" json:"createdAt"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`
}

// GoalView 前端使用的欄位名 (goalName→title, progress→current)
type GoalView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Target    int    `json:"target"`
	Current   int    `json:"current"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// View map a Goal to its frontend shape
func (g Goal) View() GoalView {
	return GoalView{
		ID:        g.ID,
		Title:     g.GoalName,
		Target:    g.Target,
		Current:   g.Progress,
		Completed: g.Completed,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
