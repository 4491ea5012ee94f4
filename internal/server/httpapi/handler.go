// Package httpapi exposes the sheet store protocol over HTTP: one GET
// and one POST endpoint, both dispatching on an action discriminator.
// The two response families (editor and material) are preserved exactly
// as clients expect them.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skyworks-mro/pirdesk/internal/common"
	"github.com/skyworks-mro/pirdesk/internal/logging"
	"github.com/skyworks-mro/pirdesk/internal/wire"
)

// SheetService is the document surface the handler needs.
type SheetService interface {
	Snapshot(ctx context.Context, key string) (*wire.Snapshot, error)
	SaveFindings(ctx context.Context, key string, info []string, findings []wire.Finding) error
	DeleteFinding(ctx context.Context, key, findingNo string) error
	SaveMaterials(ctx context.Context, key, findingNo string, rows []wire.Material) error
	DeleteMaterialRow(ctx context.Context, key, findingNo string, rowIndex int) error
	DeleteMaterials(ctx context.Context, key, findingNo string) error
	Master(ctx context.Context) ([]wire.MasterRow, error)
	UpdateStatus(ctx context.Context, row int, status string) error
	GenerateDoc(ctx context.Context, key string) (string, error)
}

// UserService is the account surface the handler needs.
type UserService interface {
	Login(ctx context.Context, userName, password string) (string, error)
	VerifyToken(token string) (string, error)
}

type Handler struct {
	sheets SheetService
	users  UserService
	logger logging.Logger
}

func NewHandler(sheets SheetService, users UserService, logger logging.Logger) *Handler {
	return &Handler{sheets: sheets, users: users, logger: logger}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/api", h.handleGet)
	r.POST("/api", h.handlePost)
	return r
}

func (h *Handler) handleGet(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.Query("action") {
	case wire.ActionGet:
		snap, err := h.sheets.Snapshot(ctx, c.Query("id"))
		if err != nil {
			h.logger.Error(ctx, "snapshot failed", "id", c.Query("id"), "error", err)
			c.String(statusFor(err), "%v", err)
			return
		}
		c.JSON(http.StatusOK, snap)

	case wire.ActionGetMaster:
		rows, err := h.sheets.Master(ctx)
		if err != nil {
			h.logger.Error(ctx, "master failed", "error", err)
			c.String(statusFor(err), "%v", err)
			return
		}
		if rows == nil {
			rows = []wire.MasterRow{}
		}
		c.JSON(http.StatusOK, rows)

	case wire.ActionUpdateStatus:
		row, err := strconv.Atoi(c.Query("row"))
		if err != nil || row < 1 {
			c.JSON(http.StatusOK, wire.EditorResult{Error: "invalid row"})
			return
		}
		if err := h.sheets.UpdateStatus(ctx, row, c.Query("status")); err != nil {
			h.logger.Error(ctx, "status update failed", "row", row, "error", err)
			c.JSON(http.StatusOK, wire.EditorResult{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, wire.EditorResult{Success: true})

	default:
		c.String(http.StatusBadRequest, "unknown action")
	}
}

// handlePost dispatches on the request body shape: the editor family
// arrives form-encoded, the material family (and login) as JSON.
func (h *Handler) handlePost(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		h.handleJSONPost(c)
		return
	}
	h.handleFormPost(c)
}

func (h *Handler) handleJSONPost(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "unreadable body"})
		return
	}

	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "malformed request"})
		return
	}

	if probe.Action == wire.ActionLogin {
		var req wire.LoginRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusOK, wire.LoginResult{Error: "malformed request"})
			return
		}
		token, err := h.users.Login(ctx, req.Username, req.Password)
		if err != nil {
			h.logger.Warn(ctx, "login rejected", "user", req.Username)
			c.JSON(http.StatusOK, wire.LoginResult{Error: "invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, wire.LoginResult{Success: true, Token: token})
		return
	}

	if !h.authorized(c) {
		c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "unauthorized"})
		return
	}

	switch probe.Action {
	case wire.ActionSave:
		var req wire.SaveMaterialsRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "malformed request"})
			return
		}
		h.materialResult(c, h.sheets.SaveMaterials(ctx, req.SheetID, req.FindingName, req.Materials))

	case wire.ActionDelete:
		var req wire.DeleteMaterialsRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "malformed request"})
			return
		}
		h.materialResult(c, h.sheets.DeleteMaterials(ctx, req.SheetID, req.FindingName))

	case wire.ActionDeleteRow:
		var req wire.DeleteRowRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "malformed request"})
			return
		}
		h.materialResult(c, h.sheets.DeleteMaterialRow(ctx, req.SheetID, req.FindingName, req.RowIndex))

	default:
		c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: "unknown action"})
	}
}

func (h *Handler) handleFormPost(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.authorized(c) {
		c.JSON(http.StatusOK, wire.EditorResult{Error: "unauthorized"})
		return
	}

	switch c.PostForm("action") {
	case wire.ActionUpdatePIR:
		info := make([]string, len(wire.InfoFieldNames))
		for i, name := range wire.InfoFieldNames {
			info[i] = c.PostForm(name)
		}

		var findings []wire.Finding
		if raw := c.PostForm("findings"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &findings); err != nil {
				c.JSON(http.StatusOK, wire.EditorResult{Error: "malformed findings"})
				return
			}
		}

		key := c.PostForm("sheetId")
		if err := h.sheets.SaveFindings(ctx, key, info, findings); err != nil {
			h.logger.Error(ctx, "save rejected", "doc", key, "error", err)
			c.JSON(http.StatusOK, wire.EditorResult{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, wire.EditorResult{Success: true})

	case wire.ActionDeleteFinding:
		key := c.PostForm("sheetId")
		if err := h.sheets.DeleteFinding(ctx, key, c.PostForm("findingNo")); err != nil {
			h.logger.Error(ctx, "delete rejected", "doc", key, "error", err)
			c.JSON(http.StatusOK, wire.EditorResult{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, wire.EditorResult{Success: true})

	case wire.ActionGenerateDoc:
		key := c.PostForm("sheetId")
		url, err := h.sheets.GenerateDoc(ctx, key)
		if err != nil {
			h.logger.Error(ctx, "doc generation failed", "doc", key, "error", err)
			c.JSON(http.StatusOK, wire.EditorResult{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, wire.EditorResult{Success: true, CopiedDocURL: url})

	default:
		c.JSON(http.StatusOK, wire.EditorResult{Error: "unknown action"})
	}
}

func (h *Handler) authorized(c *gin.Context) bool {
	token := c.GetHeader(common.SessionTokenHeaderName)
	if token == "" {
		return false
	}
	_, err := h.users.VerifyToken(token)
	return err == nil
}

// materialResult writes the material family response for a mutation
// outcome. Rejections travel in the 200 body so the client can keep its
// local state and report the reason.
func (h *Handler) materialResult(c *gin.Context, err error) {
	if err != nil {
		c.JSON(http.StatusOK, wire.MaterialResult{Status: "error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, wire.MaterialResult{Status: wire.StatusSuccess})
}

func statusFor(err error) int {
	if errors.Is(err, common.ErrorNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
