package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/domain"
	"github.com/heartmarshall/communities-gateway/pkg/ctxutil"
)

// forumService defines the minimal interface needed by ForumHandler.
type forumService interface {
	CreateCommunity(userID string, in contract.CreateCommunityRequest) domain.Community
	ListMine(userID string) []domain.Community
	GetCommunity(id string) (domain.Community, error)
	ListCommunities(offset, limit int) domain.CommunityPage
	Join(communityID, userID string) (domain.JoinConfirmation, error)
	MembershipStatus(communityID, userID string) (domain.MembershipStatus, error)

	CreateCategory(communityID, userID string, in contract.ForumCategoryRequest) (domain.ForumCategory, error)
	ListCategories(communityID string) ([]domain.ForumCategory, error)
	UpdateCategory(communityID, categoryID, userID string, in contract.ForumCategoryRequest) (domain.ForumCategory, error)
	DeleteCategory(communityID, categoryID, userID string) error

	CreateTopic(communityID, categoryID, userID, displayName string, in contract.ForumTopicRequest) (domain.ForumTopic, error)
	ListTopics(communityID, categoryID string, offset, limit int) (domain.TopicPage, error)
	LatestTopics(communityID string, limit int) (domain.TopicPage, error)
	GetTopic(communityID, topicID string) (domain.ForumTopic, error)
	DeleteTopic(communityID, topicID, userID string) error
}

// ForumHandler serves the community, category and topic endpoints.
type ForumHandler struct {
	svc forumService
	log *slog.Logger
}

// NewForumHandler creates a ForumHandler.
func NewForumHandler(svc forumService, logger *slog.Logger) *ForumHandler {
	return &ForumHandler{svc: svc, log: logger.With("handler", "forum")}
}

// input is the decoded request of one endpoint.
type input struct {
	userID string
	path   map[string]string
	query  map[string]int
}

// bind authenticates the caller and validates path and query parameters
// against desc. When body is non-nil it is decoded and validated too.
// All field errors are reported together in one 422 response.
func (h *ForumHandler) bind(w http.ResponseWriter, r *http.Request, desc contract.Descriptor, body validator) (input, bool) {
	var in input
	if desc.Auth != contract.AuthNone {
		userID, ok := requireUser(w, r)
		if !ok {
			return in, false
		}
		in.userID = userID
	}

	path, errs := pathValues(r, desc)
	query, queryErrs := queryInts(r, desc)
	errs = append(errs, queryErrs...)

	if body != nil {
		if !decodeBody(w, r, body) {
			return in, false
		}
		errs = append(errs, body.Validate()...)
	}

	if len(errs) > 0 {
		writeValidation(w, errs)
		return in, false
	}

	in.path = path
	in.query = query
	return in, true
}

type validator interface {
	Validate() []domain.FieldError
}

// ---------------------------------------------------------------------------
// Communities
// ---------------------------------------------------------------------------

// CreateCommunity handles POST /communities/.
func (h *ForumHandler) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateCommunityRequest
	in, ok := h.bind(w, r, contract.CreateCommunity, &req)
	if !ok {
		return
	}
	writeJSON(w, contract.CreateCommunity.Success, h.svc.CreateCommunity(in.userID, req))
}

// ListMyCommunities handles GET /communities/me.
func (h *ForumHandler) ListMyCommunities(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.ListMyCommunities, nil)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ListMine(in.userID))
}

// GetCommunity handles GET /communities/{communityId}.
func (h *ForumHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.GetCommunity, nil)
	if !ok {
		return
	}
	c, err := h.svc.GetCommunity(in.path["communityId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListAllCommunities handles GET /communities.
func (h *ForumHandler) ListAllCommunities(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.ListAllCommunities, nil)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ListCommunities(in.query["offset"], in.query["limit"]))
}

// JoinCommunity handles POST /communities/{communityId}/join.
func (h *ForumHandler) JoinCommunity(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.JoinCommunity, nil)
	if !ok {
		return
	}
	conf, err := h.svc.Join(in.path["communityId"], in.userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

// GetMembershipStatus handles GET /communities/{communityId}/membership_status.
func (h *ForumHandler) GetMembershipStatus(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.GetMembershipStatus, nil)
	if !ok {
		return
	}
	st, err := h.svc.MembershipStatus(in.path["communityId"], in.userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// CreateForumCategory handles POST /communities/{communityId}/forum-categories.
func (h *ForumHandler) CreateForumCategory(w http.ResponseWriter, r *http.Request) {
	var req contract.ForumCategoryRequest
	in, ok := h.bind(w, r, contract.CreateForumCategory, &req)
	if !ok {
		return
	}
	cat, err := h.svc.CreateCategory(in.path["communityId"], in.userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, contract.CreateForumCategory.Success, cat)
}

// ListForumCategories handles GET /communities/{communityId}/forum-categories.
func (h *ForumHandler) ListForumCategories(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.ListForumCategories, nil)
	if !ok {
		return
	}
	cats, err := h.svc.ListCategories(in.path["communityId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// UpdateForumCategory handles PUT /communities/{communityId}/forum-categories/{categoryId}.
func (h *ForumHandler) UpdateForumCategory(w http.ResponseWriter, r *http.Request) {
	var req contract.ForumCategoryRequest
	in, ok := h.bind(w, r, contract.UpdateForumCategory, &req)
	if !ok {
		return
	}
	cat, err := h.svc.UpdateCategory(in.path["communityId"], in.path["categoryId"], in.userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// DeleteForumCategory handles DELETE /communities/{communityId}/forum-categories/{categoryId}.
func (h *ForumHandler) DeleteForumCategory(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.DeleteForumCategory, nil)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(in.path["communityId"], in.path["categoryId"], in.userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Topics
// ---------------------------------------------------------------------------

// CreateForumTopic handles POST /communities/{communityId}/categories/{categoryId}/topics.
// The author display name is taken from the caller's credential.
func (h *ForumHandler) CreateForumTopic(w http.ResponseWriter, r *http.Request) {
	var req contract.ForumTopicRequest
	in, ok := h.bind(w, r, contract.CreateForumTopic, &req)
	if !ok {
		return
	}
	topic, err := h.svc.CreateTopic(
		in.path["communityId"], in.path["categoryId"],
		in.userID, ctxutil.DisplayNameFromCtx(r.Context()), req,
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, contract.CreateForumTopic.Success, topic)
}

// ListForumTopicsInCategory handles GET /communities/{communityId}/categories/{categoryId}/topics.
func (h *ForumHandler) ListForumTopicsInCategory(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.ListForumTopicsInCategory, nil)
	if !ok {
		return
	}
	page, err := h.svc.ListTopics(in.path["communityId"], in.path["categoryId"], in.query["offset"], in.query["limit"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListLatestForumTopics handles GET /communities/{communityId}/topics/latest.
func (h *ForumHandler) ListLatestForumTopics(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.ListLatestForumTopics, nil)
	if !ok {
		return
	}
	page, err := h.svc.LatestTopics(in.path["communityId"], in.query["limit"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetForumTopic handles GET /communities/{communityId}/topics/{topicId}.
func (h *ForumHandler) GetForumTopic(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.GetForumTopic, nil)
	if !ok {
		return
	}
	topic, err := h.svc.GetTopic(in.path["communityId"], in.path["topicId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// DeleteForumTopic handles DELETE /communities/{communityId}/topics/{topicId}.
func (h *ForumHandler) DeleteForumTopic(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bind(w, r, contract.DeleteForumTopic, nil)
	if !ok {
		return
	}
	if err := h.svc.DeleteTopic(in.path["communityId"], in.path["topicId"], in.userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
