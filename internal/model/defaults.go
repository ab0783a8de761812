package model

// DefaultTasks returns the starter catalog used when no catalog has been saved.
func DefaultTasks() []Task {
	return []Task{
		{ID: 1, Name: "Out of bed @ alarm", Points: 5, Kind: KindCheckbox},
		{ID: 2, Name: "Applications", Points: 2.5, Kind: KindStackable, Stackable: true, Counts: StackApplications},
		{ID: 3, Name: "Application + cover letter", Points: 10, Kind: KindStackable, Stackable: true, Counts: StackCoverLetters},
		{ID: 4, Name: "150g protein", Points: 10, Kind: KindNutrition},
		{ID: 5, Name: "Development/learning app", Points: 0, Kind: KindTimed, MinuteRate: DefaultMinuteRate},
		{ID: 6, Name: "Finance/IB learning", Points: 0, Kind: KindTimed, MinuteRate: DefaultMinuteRate},
		{ID: 7, Name: "SPF", Points: 5, Kind: KindCheckbox},
		{ID: 8, Name: "Minoxidil", Points: 5, Kind: KindCheckbox},
		{ID: 9, Name: "Asleep by 12", Points: 10, Kind: KindCheckbox},
		{ID: 10, Name: "Gym", Points: 15, Kind: KindWorkout},
		{ID: 11, Name: "Clean room", Points: 5, Kind: KindCheckbox},
		{ID: 12, Name: "Laundry", Points: 5, Kind: KindCheckbox},
		{ID: 13, Name: "Get to office @ 8:45", Points: 5, Kind: KindCheckbox},
	}
}

// DefaultExercises returns the starter list of selectable exercises.
func DefaultExercises() []string {
	return []string{
		"Bench Press", "Squat", "Deadlift", "Overhead Press", "Barbell Row",
		"Pull-ups", "Dips", "Bicep Curls", "Tricep Extensions", "Leg Press",
		"Lat Pulldown", "Cable Rows", "Leg Curls", "Leg Extensions", "Calf Raises",
		"Lateral Raises", "Face Pulls", "Romanian Deadlift", "Hip Thrust", "Lunges",
	}
}

// EmptyLedger returns a ledger with no activity.
func EmptyLedger() Ledger {
	l := Ledger{Applications: []Application{}}
	l.Reset()
	return l
}
