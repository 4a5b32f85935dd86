package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordbingo/internal/api/apierr"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/game"
)

// maxBodyBytes bounds request bodies; a 7x7 board of long words fits easily
const maxBodyBytes = 64 << 10

// gameID reads the room code path variable
func gameID(r *http.Request) model.GameID {
	return model.GameIDFromRoomCode(model.RoomCode(mux.Vars(r)["code"]))
}

// decode reads a JSON body into v. An empty body leaves v untouched when
// allowEmpty is set.
func decode(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}

// loadGame reads a game, translating a missing game into a missing room
func loadGame(ctx context.Context, controller *game.Controller, id model.GameID) (*model.Game, error) {
	g, err := controller.GetGame(ctx, id)
	if errors.Is(err, model.ErrGameNotFound) {
		return nil, model.ErrRoomNotFound
	}
	return g, err
}

// loadHostedGame reads a game and checks that userID hosts it
func loadHostedGame(ctx context.Context, controller *game.Controller, id model.GameID, userID model.PlayerID) (*model.Game, error) {
	g, err := loadGame(ctx, controller, id)
	if err != nil {
		return nil, err
	}
	if !g.IsHost(userID) {
		return g, model.ErrNotHost
	}
	return g, nil
}
