package server

import (
	"net/http"
	"strconv"

	"forgebox/pkg/log"
	"forgebox/pkg/models"

	"github.com/labstack/echo/v4"
)

// boxRootFolderID is the Box folder the tree starts from. The jstree
// widget sends "#" for its virtual root.
const boxRootFolderID = "0"

// boxAuthenticate returns the Box authorization URL. The session id
// doubles as the OAuth state parameter.
func (s *Server) boxAuthenticate(ctx echo.Context) error {
	sess := s.currentSession(ctx)
	return ctx.String(http.StatusOK, s.tokens.BoxAuthURL(sess.ID))
}

// boxIsAuthorized reports whether the session holds a usable Box token.
func (s *Server) boxIsAuthorized(ctx echo.Context) error {
	sess := s.currentSession(ctx)
	return ctx.String(http.StatusOK, strconv.FormatBool(sess.BoxAuthorized()))
}

// boxCallback finishes the three-legged flow: validates state, trades
// the code for a token and stores it on the session.
func (s *Server) boxCallback(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	if code == "" {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "code parameter is required"})
	}

	sess := s.currentSession(ctx)
	if state := ctx.QueryParam("state"); state != sess.ID {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "state mismatch"})
	}

	token, err := s.tokens.ExchangeBoxCode(ctx.Request().Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("Box code exchange failed")
		return ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}

	s.sessions.SetBoxToken(sess.ID, token)
	return ctx.Redirect(http.StatusFound, "/")
}

// boxTreeNode lists a Box folder as jstree nodes.
func (s *Server) boxTreeNode(ctx echo.Context) error {
	sess := s.currentSession(ctx)
	if !sess.BoxAuthorized() {
		return ctx.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Box account is not connected."})
	}

	folderID := ctx.QueryParam("id")
	if folderID == "" || folderID == "#" {
		folderID = boxRootFolderID
	}

	items, err := s.box.FolderItems(ctx.Request().Context(), sess.BoxToken.AccessToken, folderID)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID).Msg("Box folder listing failed")
		return upstreamError(ctx, err)
	}

	nodes := make([]models.TreeNode, 0, len(items.Entries))
	for _, item := range items.Entries {
		nodes = append(nodes, models.TreeNode{
			ID:       item.ID,
			Text:     item.Name,
			Type:     item.Type,
			Children: item.Type == "folder",
		})
	}
	return ctx.JSON(http.StatusOK, nodes)
}
