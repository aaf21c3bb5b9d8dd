package main

import (
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/validation"

	au "study-abroad-workers/internal/workers/auth/authenticate-user"
	lu "study-abroad-workers/internal/workers/auth/login-user"
	ru "study-abroad-workers/internal/workers/auth/register-user"

	gp "study-abroad-workers/internal/workers/profile/get-profile"
	sp "study-abroad-workers/internal/workers/profile/save-profile"

	cms "study-abroad-workers/internal/workers/university/calculate-match-score"
	cu "study-abroad-workers/internal/workers/university/categorize-university"
	gu "study-abroad-workers/internal/workers/university/get-university"
	rec "study-abroad-workers/internal/workers/university/recommend-universities"
	su "study-abroad-workers/internal/workers/university/search-universities"

	ls "study-abroad-workers/internal/workers/shortlist/list-selections"
	lk "study-abroad-workers/internal/workers/shortlist/lock-university"
	sl "study-abroad-workers/internal/workers/shortlist/shortlist-university"
	ul "study-abroad-workers/internal/workers/shortlist/unlock-university"

	mt "study-abroad-workers/internal/workers/application/manage-todos"

	ap "study-abroad-workers/internal/workers/counsellor/analyze-profile"
	cc "study-abroad-workers/internal/workers/counsellor/counsellor-chat"
)

// workerSpec is the code-side description of one worker. Schemas come
// from the worker packages so the registry cannot drift from validation.
type workerSpec struct {
	taskType    string
	displayName string
	description string
	category    string
	schema      *validation.JSONSchema
	errors      []apperrors.ErrorCode
}

func schema(s validation.JSONSchema) *validation.JSONSchema { return &s }

// Codes every job can end with regardless of the worker.
var commonCodes = []apperrors.ErrorCode{
	apperrors.ErrCodeInvalidInput,
	apperrors.ErrCodeQueryExecutionFailed,
	apperrors.ErrCodeQueryTimeout,
	apperrors.ErrCodeInternal,
}

var journeyCodes = []apperrors.ErrorCode{
	apperrors.ErrCodeTokenInvalid,
	apperrors.ErrCodeOnboardingRequired,
}

func workerSpecs() []workerSpec {
	return []workerSpec{
		{ru.TaskType, "Register User", "Creates an account and issues an access token", "auth",
			schema(ru.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeEmailAlreadyRegistered, apperrors.ErrCodeDatabaseInsertFailed}},
		{lu.TaskType, "Login User", "Checks credentials and issues an access token", "auth",
			schema(lu.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeInvalidCredentials}},
		{au.TaskType, "Authenticate User", "Resolves a bearer token to its user", "auth",
			nil, []apperrors.ErrorCode{apperrors.ErrCodeTokenInvalid}},

		{sp.TaskType, "Save Profile", "Stores the onboarding profile and moves the user past onboarding", "profile",
			schema(sp.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeTokenInvalid, apperrors.ErrCodeDatabaseInsertFailed}},
		{gp.TaskType, "Get Profile", "Returns the user's profile", "profile",
			nil, []apperrors.ErrorCode{apperrors.ErrCodeProfileNotFound}},

		{rec.TaskType, "Recommend Universities", "Filters and ranks the catalog for the user's profile", "university",
			schema(rec.GetInputSchema()), journeyCodes},
		{cms.TaskType, "Calculate Match Score", "Scores one university against the user's profile", "university",
			schema(cms.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeTokenInvalid, apperrors.ErrCodeUniversityNotFound}},
		{cu.TaskType, "Categorize University", "Labels a university dream, target or safe for the user", "university",
			schema(cu.GetInputSchema()), append([]apperrors.ErrorCode{apperrors.ErrCodeUniversityNotFound}, journeyCodes...)},
		{gu.TaskType, "Get University", "Returns one catalog entry", "university",
			schema(gu.GetInputSchema()), append([]apperrors.ErrorCode{apperrors.ErrCodeUniversityNotFound}, journeyCodes...)},
		{su.TaskType, "Search Universities", "Full-text search over the catalog index", "university",
			schema(su.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeTokenInvalid, apperrors.ErrCodeSearchQueryFailed, apperrors.ErrCodeSearchTimeout}},

		{sl.TaskType, "Shortlist University", "Adds a university to the user's shortlist", "shortlist",
			schema(sl.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeUniversityNotFound, apperrors.ErrCodeAlreadyShortlisted, apperrors.ErrCodeDatabaseInsertFailed}},
		{lk.TaskType, "Lock University", "Commits to a shortlisted university and moves the user to the application stage", "shortlist",
			schema(lk.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeUniversityNotFound, apperrors.ErrCodeNotShortlisted, apperrors.ErrCodeAlreadyLocked}},
		{ul.TaskType, "Unlock University", "Removes a university from the locked list", "shortlist",
			schema(ul.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeNotLocked}},
		{ls.TaskType, "List Selections", "Returns the shortlisted and locked universities", "shortlist",
			nil, []apperrors.ErrorCode{apperrors.ErrCodeTokenInvalid}},

		{mt.TaskType, "Manage Todos", "Lists, creates, updates and deletes application tasks", "application",
			schema(mt.GetInputSchema()), []apperrors.ErrorCode{apperrors.ErrCodeTodoNotFound, apperrors.ErrCodeUnsupportedAction, apperrors.ErrCodeDatabaseInsertFailed}},

		{cc.TaskType, "Counsellor Chat", "Answers a chat message with the user's journey as context", "counsellor",
			nil, append([]apperrors.ErrorCode{apperrors.ErrCodeProfileNotFound, apperrors.ErrCodeLLMGenerationFailed, apperrors.ErrCodeLLMTimeout}, journeyCodes...)},
		{ap.TaskType, "Analyze Profile", "Writes a strengths and gaps analysis of the profile", "counsellor",
			nil, append([]apperrors.ErrorCode{apperrors.ErrCodeProfileNotFound, apperrors.ErrCodeLLMGenerationFailed, apperrors.ErrCodeLLMTimeout}, journeyCodes...)},
	}
}

func (w workerSpec) errorCodes() []string {
	seen := make(map[apperrors.ErrorCode]bool)
	var out []string
	for _, group := range [][]apperrors.ErrorCode{w.errors, commonCodes} {
		for _, code := range group {
			if !seen[code] {
				seen[code] = true
				out = append(out, string(code))
			}
		}
	}
	return out
}
