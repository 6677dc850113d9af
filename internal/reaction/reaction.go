package reaction

// Kind - вид реакции пользователя на урок.
type Kind string

const (
	Like    Kind = "like"
	Dislike Kind = "dislike"
)

// State - текущая позиция пары (lesson, user).
type State int

const (
	None State = iota
	Liked
	Disliked
)

// StateOf converts a stored reaction row value into a State.
func StateOf(reaction string) State {
	switch Kind(reaction) {
	case Like:
		return Liked
	case Dislike:
		return Disliked
	default:
		return None
	}
}

// Transition - результат применения желаемой реакции к текущему состоянию.
// LikeDelta и DislikeDelta применяются к счётчикам урока атомарно.
type Transition struct {
	Next         State
	LikeDelta    int
	DislikeDelta int
}

// Apply реализует переходы:
//
//	None     + like    -> Liked    (+1  0)
//	None     + dislike -> Disliked ( 0 +1)
//	Liked    + like    -> None     (-1  0)  повторный лайк снимает реакцию
//	Liked    + dislike -> Disliked (-1 +1)
//	Disliked + dislike -> None     ( 0 -1)
//	Disliked + like    -> Liked    (+1 -1)
//
// Каждый декремент соответствует удаляемой или изменяемой строке реакции,
// поэтому счётчики не могут уйти в минус.
func Apply(current State, desired Kind) Transition {
	switch current {
	case Liked:
		if desired == Like {
			return Transition{Next: None, LikeDelta: -1}
		}
		return Transition{Next: Disliked, LikeDelta: -1, DislikeDelta: 1}
	case Disliked:
		if desired == Dislike {
			return Transition{Next: None, DislikeDelta: -1}
		}
		return Transition{Next: Liked, LikeDelta: 1, DislikeDelta: -1}
	default:
		if desired == Like {
			return Transition{Next: Liked, LikeDelta: 1}
		}
		return Transition{Next: Disliked, DislikeDelta: 1}
	}
}

// String возвращает значение для колонки reaction.
func (s State) String() string {
	switch s {
	case Liked:
		return string(Like)
	case Disliked:
		return string(Dislike)
	default:
		return ""
	}
}
