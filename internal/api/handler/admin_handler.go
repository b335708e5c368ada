package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminSvc: adminSvc,
	}
}

func (s *AdminHandler) Login(c *gin.Context) {
	var loginDTO dto.AdminLoginDTO
	if err := c.ShouldBindJSON(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.adminSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"token": token})
}

func (s *AdminHandler) Data(c *gin.Context) {
	data, err := s.adminSvc.Data(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": data})
}

func (s *AdminHandler) TogglePin(c *gin.Context) {
	entryID := c.Param("entry_id")

	pinned, err := s.adminSvc.TogglePin(c.Request.Context(), entryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"is_pinned": pinned})
}

func (s *AdminHandler) DeleteEntry(c *gin.Context) {
	entryID := c.Param("entry_id")

	if err := s.adminSvc.DeleteEntry(c.Request.Context(), entryID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil)
}
