package handlers

import (
	"net/http"
)

// Ключи контекста, заполняемые auth middleware.
const (
	CtxUserID      = "userID"
	CtxUsername    = "username"
	CtxIsStaff     = "isStaff"
	CtxAccessToken = "accessToken"
)

func CurrentUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(CtxUserID).(string)
	return userID, ok && userID != ""
}

func IsStaff(r *http.Request) bool {
	isStaff, ok := r.Context().Value(CtxIsStaff).(bool)
	return ok && isStaff
}

func AccessToken(r *http.Request) string {
	token, _ := r.Context().Value(CtxAccessToken).(string)
	return token
}
