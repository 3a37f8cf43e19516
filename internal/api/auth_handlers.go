package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/longduongbao29/Translator-app/internal/usecase/users"
)

const maxAvatarBytes = 5 << 20

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	u, err := s.users.Register(r.Context(), users.RegisterArgs{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			writeErrorMessage(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, u, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         u,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

type profileRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	u, err := s.users.UpdateProfile(r.Context(), userFrom(r.Context()).ID, users.ProfileArgs{
		Email:    req.Email,
		FullName: req.FullName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleUploadAvatar stores the uploaded image under the avatar dir and saves
// its serving path on the profile.
func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		writeErrorMessage(w, http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	if err := os.MkdirAll(s.avatarDir, 0o755); err != nil {
		writeError(w, err)
		return
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.avatarDir, name))
	if err != nil {
		writeError(w, err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, maxAvatarBytes)); err != nil {
		writeError(w, err)
		return
	}

	path := "/" + filepath.ToSlash(filepath.Join(s.avatarDir, name))
	u, err := s.users.UpdateProfile(r.Context(), userFrom(r.Context()).ID, users.ProfileArgs{Avatar: &path})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
