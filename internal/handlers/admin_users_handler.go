package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	"github.com/reservaestudios/studio-booking-api/internal/domain/access"
	"github.com/reservaestudios/studio-booking-api/internal/httpresp"
	"github.com/reservaestudios/studio-booking-api/internal/middleware"
	"github.com/reservaestudios/studio-booking-api/internal/models"
	"github.com/reservaestudios/studio-booking-api/internal/timezone"
	"github.com/reservaestudios/studio-booking-api/internal/validators"
)

type AdminUsersHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminUsersHandler(db *gorm.DB, auditd *audit.Dispatcher) *AdminUsersHandler {
	return &AdminUsersHandler{db: db, audit: auditd}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Category string `json:"category" binding:"required"`
	Initials string `json:"initials" binding:"required"`
	Role     string `json:"role"`
}

// UpdateUserRequest is an explicit partial update: only non-nil fields are
// applied, each through the same fixed parameterized statement.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Category     *string `json:"category"`
	Initials     *string `json:"initials"`
	Role         *string `json:"role"`
	AccessExpiry *string `json:"fin_acceso"`
	Active       *bool   `json:"activo"`
}

// --------- Handlers ---------

func (h *AdminUsersHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_users"})
		return
	}

	httpresp.List(c, users)
}

func (h *AdminUsersHandler) Get(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminUsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !access.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_category"})
		return
	}

	role := req.Role
	if role == "" {
		role = access.RoleUser
	}
	if !access.IsValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	initials, ok := validators.NormalizeInitials(req.Initials)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_initials"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	now := timezone.Now()
	user := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Category:     req.Category,
		Initials:     initials,
		Role:         role,
		Active:       true,
		AccessExpiry: access.ExpiryFor(role, req.Category, now),
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		user.Phone = &p
	}

	if err := h.db.Create(&user).Error; err != nil {
		if field := uniqueFieldConflict(err); field != "" {
			c.JSON(http.StatusConflict, gin.H{"error": field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	adminID := middleware.GetUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, user)
}

func (h *AdminUsersHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	updates := map[string]any{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Category != nil {
		if !access.IsValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_category"})
			return
		}
		updates["category"] = *req.Category
	}
	if req.Initials != nil {
		initials, ok := validators.NormalizeInitials(*req.Initials)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_initials"})
			return
		}
		updates["initials"] = initials
	}
	if req.Role != nil {
		if !access.IsValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
			return
		}
		updates["role"] = *req.Role
	}

	// Admins never carry an expiry date; a role change to admin always
	// clears it, regardless of the request body.
	becomesAdmin := req.Role != nil && *req.Role == access.RoleAdmin
	if becomesAdmin {
		updates["fin_acceso"] = nil
	} else if req.AccessExpiry != nil {
		expiry, err := timezone.ParseDate(*req.AccessExpiry)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_fin_acceso"})
			return
		}
		updates["fin_acceso"] = expiry
	}

	if req.Active != nil {
		updates["activo"] = *req.Active
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no_fields_to_update"})
		return
	}

	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		if field := uniqueFieldConflict(err); field != "" {
			c.JSON(http.StatusConflict, gin.H{"error": field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_user"})
		return
	}

	adminID := middleware.GetUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, user)
}

func (h *AdminUsersHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	if uint(id) == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot_deactivate_own_account"})
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	if err := h.db.Model(&user).Update("activo", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_deactivate_user"})
		return
	}

	adminID := middleware.GetUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_deactivated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "user deactivated", "user": gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"activo": user.Active,
	}})
}

// uniqueFieldConflict names the unique field behind a 23505, or "".
func uniqueFieldConflict(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return ""
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return "email_already_registered"
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return "phone_already_registered"
	case strings.Contains(pgErr.ConstraintName, "initials"):
		return "initials_already_in_use"
	}
	return "duplicate_value"
}
