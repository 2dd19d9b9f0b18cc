package db

import "trivia/internal/engine"

func toGameRecord(game *engine.Game) Game {
	record := Game{
		Code:              game.Code,
		Name:              game.Name,
		OwnerID:           game.OwnerID,
		MaxTeams:          game.MaxTeams,
		MaxPlayersPerTeam: game.MaxPlayersPerTeam,
		Status:            string(game.Status),
		NextMessageID:     game.NextMessageID,
		NextActionType:    string(game.NextActionType),
	}
	for _, round := range game.Rounds {
		roundRecord := Round{Ordinal: round.Ordinal, Class: string(round.Class)}
		for _, category := range round.Board.Categories {
			categoryRecord := Category{Ordinal: category.Ordinal, Name: category.Name}
			for _, tile := range category.Tiles {
				categoryRecord.Tiles = append(categoryRecord.Tiles, Tile{
					Ordinal:       tile.Ordinal,
					IsDailyDouble: tile.IsDailyDouble,
					Trivia: Trivia{
						Answer:   tile.Trivia.Answer,
						Question: tile.Trivia.Question,
					},
				})
			}
			roundRecord.Board.Categories = append(roundRecord.Board.Categories, categoryRecord)
		}
		record.Rounds = append(record.Rounds, roundRecord)
	}
	return record
}

func fromGameRecord(record Game) *engine.Game {
	game := &engine.Game{
		ID:                record.ID,
		Code:              record.Code,
		Name:              record.Name,
		OwnerID:           record.OwnerID,
		MaxTeams:          record.MaxTeams,
		MaxPlayersPerTeam: record.MaxPlayersPerTeam,
		Status:            engine.Status(record.Status),
		NextMessageID:     record.NextMessageID,
		NextRoundID:       derefID(record.NextRoundID),
		NextActionType:    engine.ActionType(record.NextActionType),
		NextChooserID:     derefID(record.NextChooserID),
	}
	for _, roundRecord := range record.Rounds {
		round := engine.Round{
			ID:      roundRecord.ID,
			Class:   engine.RoundClass(roundRecord.Class),
			Ordinal: roundRecord.Ordinal,
			Board:   engine.Board{ID: roundRecord.Board.ID},
		}
		for _, categoryRecord := range roundRecord.Board.Categories {
			category := engine.Category{
				ID:      categoryRecord.ID,
				Name:    categoryRecord.Name,
				Ordinal: categoryRecord.Ordinal,
			}
			for _, tileRecord := range categoryRecord.Tiles {
				category.Tiles = append(category.Tiles, engine.Tile{
					ID:            tileRecord.ID,
					Ordinal:       tileRecord.Ordinal,
					IsDailyDouble: tileRecord.IsDailyDouble,
					Trivia: engine.Trivia{
						ID:       tileRecord.Trivia.ID,
						Answer:   tileRecord.Trivia.Answer,
						Question: tileRecord.Trivia.Question,
					},
				})
			}
			round.Board.Categories = append(round.Board.Categories, category)
		}
		game.Rounds = append(game.Rounds, round)
	}
	for _, teamRecord := range record.Teams {
		team := engine.Team{ID: teamRecord.ID, Name: teamRecord.Name, Score: teamRecord.Score}
		for _, playerRecord := range teamRecord.Players {
			team.Players = append(team.Players, engine.Player{
				UserID: playerRecord.UserID,
				Name:   playerRecord.Name,
				Active: playerRecord.Active,
			})
		}
		game.Teams = append(game.Teams, team)
	}
	return game
}
