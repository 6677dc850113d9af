package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_TransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		current State
		desired Kind
		want    Transition
	}{
		{"Первый лайк", None, Like, Transition{Next: Liked, LikeDelta: 1, DislikeDelta: 0}},
		{"Первый дизлайк", None, Dislike, Transition{Next: Disliked, LikeDelta: 0, DislikeDelta: 1}},
		{"Повторный лайк снимает реакцию", Liked, Like, Transition{Next: None, LikeDelta: -1, DislikeDelta: 0}},
		{"Смена лайка на дизлайк", Liked, Dislike, Transition{Next: Disliked, LikeDelta: -1, DislikeDelta: 1}},
		{"Повторный дизлайк снимает реакцию", Disliked, Dislike, Transition{Next: None, LikeDelta: 0, DislikeDelta: -1}},
		{"Смена дизлайка на лайк", Disliked, Like, Transition{Next: Liked, LikeDelta: 1, DislikeDelta: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Apply(tc.current, tc.desired))
		})
	}
}

func TestApply_ToggleIsIdempotent(t *testing.T) {
	// like затем like возвращает в исходное состояние с нулевой суммой дельт
	for _, kind := range []Kind{Like, Dislike} {
		first := Apply(None, kind)
		second := Apply(first.Next, kind)

		assert.Equal(t, None, second.Next)
		assert.Equal(t, 0, first.LikeDelta+second.LikeDelta)
		assert.Equal(t, 0, first.DislikeDelta+second.DislikeDelta)
	}
}

func TestApply_ExampleSequence(t *testing.T) {
	// Урок начинается с {like:0, dislike:0}
	like, dislike := 0, 0
	stateA, stateB := None, None

	apply := func(state *State, kind Kind) {
		tr := Apply(*state, kind)
		*state = tr.Next
		like += tr.LikeDelta
		dislike += tr.DislikeDelta
	}

	// Пользователь A ставит лайк
	apply(&stateA, Like)
	assert.Equal(t, []int{1, 0}, []int{like, dislike})

	// Пользователь A ставит лайк повторно
	apply(&stateA, Like)
	assert.Equal(t, []int{0, 0}, []int{like, dislike})

	// Пользователь A ставит дизлайк
	apply(&stateA, Dislike)
	assert.Equal(t, []int{0, 1}, []int{like, dislike})

	// Пользователь B ставит дизлайк
	apply(&stateB, Dislike)
	assert.Equal(t, []int{0, 2}, []int{like, dislike})

	// Счётчики никогда не отрицательные
	assert.GreaterOrEqual(t, like, 0)
	assert.GreaterOrEqual(t, dislike, 0)
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, Liked, StateOf("like"))
	assert.Equal(t, Disliked, StateOf("dislike"))
	assert.Equal(t, None, StateOf(""))
	assert.Equal(t, None, StateOf("unknown"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "like", Liked.String())
	assert.Equal(t, "dislike", Disliked.String())
	assert.Equal(t, "", None.String())
}
