package user

import "math"

// BaseXPPerLevel anchors the level curve: reaching level n+1 from n costs
// BaseXPPerLevel * n^1.2 on top of the level floor.
const BaseXPPerLevel = 100

func xpForNextLevel(currentLevel int) int64 {
	if currentLevel < 1 {
		currentLevel = 1
	}
	return int64(float64(BaseXPPerLevel) * math.Pow(float64(currentLevel), 1.2))
}

// ApplyXP credits experience to the user and advances the level while enough
// total XP has accumulated. Weekly XP tracks the same credit until the weekly
// reset zeroes it.
func ApplyXP(u *User, xp int64) {
	if xp <= 0 {
		return
	}
	if u.Level < 1 {
		u.Level = 1
	}

	u.XP += xp
	u.WeeklyXP += xp

	for u.XP >= int64(BaseXPPerLevel)*int64(u.Level)+xpForNextLevel(u.Level) {
		u.Level++
	}
}
