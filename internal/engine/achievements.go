package engine

// Achievement represents a badge the player can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements the player has earned.
type AchievementChecker struct {
	status PlayerStatus
	tasks  []Task
}

func NewAchievementChecker(status PlayerStatus, tasks []Task) *AchievementChecker {
	return &AchievementChecker{
		status: status,
		tasks:  tasks,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("first_steps", "First Steps", "Reach level 1", "🌱", 1),
		c.levelAchievement("getting_started", "Getting Started", "Reach level 3", "🌿", 3),
		c.levelAchievement("on_the_path", "On the Path", "Reach level 5", "🌳", 5),
		c.levelAchievement("seasoned", "Seasoned Adventurer", "Reach level 10", "⭐", 10),

		// Completion milestones
		c.taskCountAchievement("first_task", "First Task", "Complete 1 task", "✓", 1),
		c.taskCountAchievement("productive", "Productive", "Complete 10 tasks", "📋", 10),
		c.taskCountAchievement("achiever", "Achiever", "Complete 50 tasks", "🏅", 50),

		// Skill tracks
		c.skillAchievement("smart", "Smart", "INT level 3", "🧠", c.status.LevelINT, 3),
		c.skillAchievement("swift", "Swift", "Speed level 3", "⚡", c.status.LevelSpeed, 3),

		// Projects
		c.projectAchievement("first_project", "Project Manager", "Complete a project", "📦"),
		c.decompositionAchievement("divide_and_conquer", "Divide and Conquer", "Split a project into 3+ subtasks", "🧩", 3),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := LevelForTotalXP(c.status.XPTotal) >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) taskCountAchievement(id, name, desc, icon string, count int) Achievement {
	doneCount := 0
	for _, t := range c.tasks {
		if t.Completed && t.Kind != KindProject {
			doneCount++
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: doneCount >= count}
}

func (c *AchievementChecker) skillAchievement(id, name, desc, icon string, have, want int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: have >= want}
}

func (c *AchievementChecker) projectAchievement(id, name, desc, icon string) Achievement {
	earned := false
	for _, t := range c.tasks {
		if t.Kind == KindProject && t.Completed {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) decompositionAchievement(id, name, desc, icon string, children int) Achievement {
	earned := false
	for _, t := range c.tasks {
		if t.Kind == KindProject && len(t.ChildIDs) >= children {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}
