package progression

type Result struct {
	LeveledUp   bool
	Level       int64
	Exp         int64
	RequiredExp int64
	ExpGained   int64
}
