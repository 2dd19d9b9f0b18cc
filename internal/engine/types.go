package engine

import "time"

type Status string

const (
	StatusEditable Status = "editable"
	StatusJoinable Status = "joinable"
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
)

type RoundClass string

const (
	RoundSingle RoundClass = "single"
	RoundDouble RoundClass = "double"
	RoundFinal  RoundClass = "final"
)

type ActionType string

const (
	ActionBuzz     ActionType = "buzz"
	ActionChoice   ActionType = "choice"
	ActionResponse ActionType = "response"
	ActionWager    ActionType = "wager"
)

// Game is the authoritative state of one game. Rounds and everything below
// them are fixed once the game is created; teams, the action ledger and the
// reveals change as the game is played.
type Game struct {
	ID                uint
	Code              string
	Name              string
	OwnerID           uint
	MaxTeams          int
	MaxPlayersPerTeam int
	Status            Status
	NextMessageID     int64
	NextRoundID       uint
	// NextActionType is empty when no further action is possible.
	NextActionType ActionType
	NextChooserID  uint
	Rounds         []Round
	Teams          []Team
	Actions        []Action
	Reveals        []Reveal
}

type Round struct {
	ID      uint
	Class   RoundClass
	Ordinal int
	Board   Board
}

type Board struct {
	ID         uint
	Categories []Category
}

type Category struct {
	ID      uint
	Name    string
	Ordinal int
	Tiles   []Tile
}

type Tile struct {
	ID            uint
	Ordinal       int
	IsDailyDouble bool
	Trivia        Trivia
}

type Trivia struct {
	ID       uint
	Answer   string
	Question string
}

type Team struct {
	ID      uint
	Name    string
	Score   int
	Players []Player
}

type Player struct {
	UserID uint
	Name   string
	Active bool
}

// User is the identity behind a player, as known to the caller.
type User struct {
	ID     uint
	Name   string
	Active bool
}

// Action is one entry of the append-only ledger: Choice, Buzz, Response or
// Wager.
type Action interface {
	Type() ActionType
	Base() ActionBase
	withBase(ActionBase) Action
}

type ActionBase struct {
	TileID uint
	TeamID uint
	UserID uint
	// MessageID is the message id the action was admitted under. It orders
	// the ledger.
	MessageID int64
	CreatedAt time.Time
}

func (b ActionBase) Base() ActionBase { return b }

type Choice struct {
	ActionBase
}

type Buzz struct {
	ActionBase
}

type Response struct {
	ActionBase
	Question  string
	IsCorrect bool
}

type Wager struct {
	ActionBase
	Amount int
}

func (Choice) Type() ActionType   { return ActionChoice }
func (Buzz) Type() ActionType     { return ActionBuzz }
func (Response) Type() ActionType { return ActionResponse }
func (Wager) Type() ActionType    { return ActionWager }

func (a Choice) withBase(b ActionBase) Action   { a.ActionBase = b; return a }
func (a Buzz) withBase(b ActionBase) Action     { a.ActionBase = b; return a }
func (a Response) withBase(b ActionBase) Action { a.ActionBase = b; return a }
func (a Wager) withBase(b ActionBase) Action    { a.ActionBase = b; return a }

// Request is a client's proposal for the next action. Only the tile and the
// variant payload of Action are read; the team, user and timestamp are
// filled in when the action is recorded.
type Request struct {
	MessageID int64
	Action    Action
}

type Level string

const (
	LevelCategory Level = "category"
	LevelTile     Level = "tile"
)

type Detail string

const (
	DetailName          Detail = "name"
	DetailIsDailyDouble Detail = "is_daily_double"
	DetailAnswer        Detail = "answer"
	DetailQuestion      Detail = "question"
)

type Reveal struct {
	RoundID uint
	Level   Level
	LevelID uint
	Detail  Detail
}
