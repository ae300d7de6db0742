package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"recipebox/internal/db"
	"recipebox/internal/model"
)

const maxJSONBody = 1 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := db.ListRecipes(r.Context(), s.db)
	if err != nil {
		s.writeError(w, r, internalError(err))
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := db.InsertRecipe(r.Context(), s.db, p)
	if err != nil {
		s.writeError(w, r, internalError(err))
		return
	}
	s.log.Info("recipe created", "id", id, "title", p.Title)

	s.writeRecipe(w, r, http.StatusCreated, id)
}

func (s *Server) updateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := decodePayload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := db.UpdateRecipe(r.Context(), s.db, id, p); err != nil {
		s.writeError(w, r, storeError(err))
		return
	}
	s.log.Info("recipe updated", "id", id)

	s.writeRecipe(w, r, http.StatusOK, id)
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := db.DeleteRecipe(r.Context(), s.db, id); err != nil {
		s.writeError(w, r, storeError(err))
		return
	}
	s.log.Info("recipe deleted", "id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.maxUploadBytes())
	if err := r.ParseMultipartForm(s.cfg.maxUploadBytes()); err != nil {
		s.writeError(w, r, badRequest(fmt.Sprintf("Upload must be a multipart form under %d MB", s.cfg.MaxUploadMB), err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, validationError("Form field \"image\" is required"))
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		s.writeError(w, r, badRequest("Failed to read upload", err))
		return
	}
	contentType := http.DetectContentType(sniff[:n])
	if !strings.HasPrefix(contentType, "image/") {
		s.writeError(w, r, validationError("Only image uploads are accepted"))
		return
	}

	name := uuid.New().String() + imageExt(header.Filename, contentType)
	out, err := os.Create(filepath.Join(s.cfg.UploadDir, name))
	if err != nil {
		s.writeError(w, r, internalError(fmt.Errorf("create upload file: %w", err)))
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, io.MultiReader(bytes.NewReader(sniff[:n]), file)); err != nil {
		s.writeError(w, r, internalError(fmt.Errorf("write upload file: %w", err)))
		return
	}
	s.log.Info("image uploaded", "name", name, "content_type", contentType)

	writeJSON(w, http.StatusCreated, model.UploadResponse{URL: "/uploads/" + name})
}

func (s *Server) writeRecipe(w http.ResponseWriter, r *http.Request, status int, id int64) {
	rec, err := db.GetRecipe(r.Context(), s.db, id)
	if err != nil {
		s.writeError(w, r, storeError(err))
		return
	}
	writeJSON(w, status, rec)
}

func decodePayload(w http.ResponseWriter, r *http.Request) (model.Payload, error) {
	var p model.Payload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(&p); err != nil {
		return p, badRequest("Request body must be a recipe JSON object", err)
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return p, validationError("title is required")
	}
	return p, nil
}

func recipeID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, badRequest("Query parameter id is required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("Query parameter id must be a positive integer", err)
	}
	return id, nil
}

func storeError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return notFound("Recipe")
	}
	return internalError(err)
}

// imageExt keeps the uploaded file's extension, falling back to one derived
// from the sniffed content type.
func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
