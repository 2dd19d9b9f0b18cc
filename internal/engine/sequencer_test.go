package engine

import "testing"

func TestSequenceBasicRoundStartsWithChoice(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	step := Sequence(game, game.Round(1), nil)
	if step.Next != ActionChoice {
		t.Fatalf("expected choice, got %q", step.Next)
	}
}

func TestSequenceFinalRoundStartsWithWager(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	step := Sequence(game, game.Round(3), nil)
	if step.Next != ActionWager {
		t.Fatalf("expected wager, got %q", step.Next)
	}
}

func TestSequenceAfterChoice(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	markDailyDouble(t, game, 112)
	round := game.Round(1)

	if step := Sequence(game, round, Choice{base(111, 101)}); step.Next != ActionBuzz {
		t.Fatalf("expected buzz after normal tile choice, got %q", step.Next)
	}
	if step := Sequence(game, round, Choice{base(112, 101)}); step.Next != ActionWager {
		t.Fatalf("expected wager after daily double choice, got %q", step.Next)
	}
}

func TestSequenceResponseFollowsBuzzAndWager(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	round := game.Round(1)
	if step := Sequence(game, round, Buzz{base(111, 101)}); step.Next != ActionResponse {
		t.Fatalf("expected response after buzz, got %q", step.Next)
	}
	if step := Sequence(game, round, Wager{base(111, 101), 100}); step.Next != ActionResponse {
		t.Fatalf("expected response after wager, got %q", step.Next)
	}
}

func TestSequenceAfterResponse(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	round := game.Round(1)
	game.Actions = append(game.Actions,
		Choice{base(111, 101)},
		Buzz{base(111, 101)},
	)

	incorrect := Response{ActionBase: base(111, 101)}
	game.Actions = append(game.Actions, incorrect)
	if step := Sequence(game, round, incorrect); step.Next != ActionBuzz {
		t.Fatalf("expected buzz after some incorrect responses, got %q", step.Next)
	}

	second := Response{ActionBase: base(111, 102)}
	game.Actions = append(game.Actions, Buzz{base(111, 102)}, second)
	if step := Sequence(game, round, second); step.Next != ActionChoice {
		t.Fatalf("expected choice after all incorrect responses, got %q", step.Next)
	}

	correct := Response{ActionBase: base(111, 102), IsCorrect: true}
	if step := Sequence(game, round, correct); step.Next != ActionChoice {
		t.Fatalf("expected choice after correct response, got %q", step.Next)
	}
}

func TestSequenceDailyDoubleResponseClosesTile(t *testing.T) {
	game := newStartedGame(t, 3, 2, 3)
	markDailyDouble(t, game, 111)
	response := Response{ActionBase: base(111, 101)}
	game.Actions = append(game.Actions,
		Choice{base(111, 101)},
		Wager{base(111, 101), 100},
		response,
	)
	if step := Sequence(game, game.Round(1), response); step.Next != ActionChoice {
		t.Fatalf("expected choice after daily double response, got %q", step.Next)
	}
}

func TestSequenceRoundCompleteWhenNoTilesLeft(t *testing.T) {
	game := newStartedGame(t, 1, 1, 2)
	response := Response{ActionBase: base(112, 101), IsCorrect: true}
	game.Actions = append(game.Actions,
		Choice{base(111, 101)},
		Buzz{base(111, 101)},
		Response{ActionBase: base(111, 101), IsCorrect: true},
		Choice{base(112, 101)},
		Buzz{base(112, 101)},
		response,
	)
	step := Sequence(game, game.Round(1), response)
	if !step.RoundComplete() {
		t.Fatalf("expected round complete, got %q", step.Next)
	}
	if step.Round != 1 {
		t.Fatalf("expected completed round 1, got %d", step.Round)
	}
}

func TestSequenceFinalRound(t *testing.T) {
	game := newStartedGame(t, 2, 2, 3)
	round := game.Round(3)
	const tile = 311

	first := Wager{base(tile, 101), 100}
	game.Actions = append(game.Actions, first)
	if step := Sequence(game, round, first); step.Next != ActionWager {
		t.Fatalf("expected wager after some wagers, got %q", step.Next)
	}
	second := Wager{base(tile, 102), 100}
	game.Actions = append(game.Actions, second)
	if step := Sequence(game, round, second); step.Next != ActionResponse {
		t.Fatalf("expected response after all wagers, got %q", step.Next)
	}

	response := Response{ActionBase: base(tile, 101)}
	game.Actions = append(game.Actions, response)
	if step := Sequence(game, round, response); step.Next != ActionResponse {
		t.Fatalf("expected response after some responses, got %q", step.Next)
	}
	last := Response{ActionBase: base(tile, 102)}
	game.Actions = append(game.Actions, last)
	if step := Sequence(game, round, last); !step.RoundComplete() {
		t.Fatalf("expected round complete after all responses, got %q", step.Next)
	}
}
