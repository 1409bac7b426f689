package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
	testutil "github.com/trezcool/darasa/tests"
)

func Test_courseApi_retrieve(t *testing.T) {
	app := setup(t)

	owner := testutil.RegisterParticipant(t, directory, "Prof Owner", "owner@test.cd", participant.RoleFaculty, "")
	other := testutil.RegisterParticipant(t, directory, "Prof Other", "other@test.cd", participant.RoleFaculty, "")
	ta := testutil.RegisterParticipant(t, directory, "Tess", "tess@test.cd", participant.RoleTA, "")
	student := testutil.RegisterParticipant(t, directory, "Amina", "amina@test.cd", participant.RoleStudent, "")

	db.SeedCourse(course.Snapshot{
		ID:        "11111111-1111-1111-1111-111111111111",
		Name:      "Algorithms",
		FacultyID: owner.ID,
		Assignments: []course.Assignment{
			{
				ID: "a1", Title: "Sorting", Marks: 20, FacultyID: owner.ID,
				GradedSubmissions:   []course.Submission{testutil.GradedSubmission("sub1", student, "A", 18, owner.ID)},
				UngradedSubmissions: []course.Submission{},
			},
		},
	})
	path := "/v1/courses/11111111-1111-1111-1111-111111111111"

	tests := []httpTest{
		{name: "Auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Another faculty's course is off limits", path: path, token: getToken(t, other, participant.RoleFaculty),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Unknown course", path: "/v1/courses/nope", token: getToken(t, owner, participant.RoleFaculty),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	for name, viewer := range map[string]string{
		"Owner sees the course":   getToken(t, owner, participant.RoleFaculty),
		"TA sees the course":      getToken(t, ta, participant.RoleTA),
		"Student sees the course": getToken(t, student, participant.RoleStudent),
	} {
		t.Run(name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, path, viewer)
			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			var snap course.Snapshot
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
			assert.Equal(t, "Algorithms", snap.Name)
			assert.Equal(t, owner.ID, snap.FacultyID)
			assert.Len(t, snap.Assignments, 1)
		})
	}
}

func Test_courseApi_submissions(t *testing.T) {
	app := setup(t)

	owner := testutil.RegisterParticipant(t, directory, "Prof Owner", "owner@test.cd", participant.RoleFaculty, "")
	student := testutil.RegisterParticipant(t, directory, "Amina", "amina@test.cd", participant.RoleStudent, "")

	db.SeedCourse(course.Snapshot{
		ID:        "11111111-1111-1111-1111-111111111111",
		Name:      "Algorithms",
		FacultyID: owner.ID,
		Assignments: []course.Assignment{
			{
				ID: "a1", Title: "Sorting", Marks: 20, FacultyID: owner.ID,
				GradedSubmissions:   []course.Submission{testutil.GradedSubmission("sub1", student, "A", 18, owner.ID)},
				UngradedSubmissions: []course.Submission{testutil.UngradedSubmission("sub2", student)},
			},
		},
	})
	path := "/v1/courses/11111111-1111-1111-1111-111111111111/submissions"

	t.Run("Students may not list submissions", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, getToken(t, student, participant.RoleStudent))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("Owner gets graded and ungraded tables", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, getToken(t, owner, participant.RoleFaculty))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var tables course.SubmissionTables
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
		assert.Len(t, tables.Graded, 1)
		assert.Len(t, tables.Ungraded, 1)
		assert.Equal(t, "Sorting", tables.Graded[0].AssignmentTitle)
		assert.Equal(t, 20, tables.Graded[0].MaxMarks)
	})
}

func Test_courseApi_addParticipant(t *testing.T) {
	app := setup(t)

	owner := testutil.RegisterParticipant(t, directory, "Prof Owner", "owner@test.cd", participant.RoleFaculty, "")
	other := testutil.RegisterParticipant(t, directory, "Prof Other", "other@test.cd", participant.RoleFaculty, "")
	student := testutil.RegisterParticipant(t, directory, "Amina", "amina@test.cd", participant.RoleStudent, "")

	courseID := "11111111-1111-1111-1111-111111111111"
	db.SeedCourse(course.Snapshot{ID: courseID, Name: "Algorithms", FacultyID: owner.ID})
	path := "/v1/courses/" + courseID + "/participants"

	body := func(email, role string) []byte {
		return marchallObj(t, map[string]string{"email": email, "role": role})
	}
	ownerToken := getToken(t, owner, participant.RoleFaculty)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Faculty only", token: getToken(t, student, participant.RoleStudent), body: body("amina@test.cd", "student"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Owning faculty only", token: getToken(t, other, participant.RoleFaculty), body: body("amina@test.cd", "student"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Email and role are required", token: ownerToken, body: body("", ""),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "role": "this field is required"}),
		},
		{
			name: "Unknown role", token: ownerToken, body: body("amina@test.cd", "janitor"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"role": "invalid role"}),
		},
		{
			name: "Unregistered participant", token: ownerToken, body: body("ghost@test.cd", "student"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "participant has not registered yet"}),
		},
		{
			name: "Enrolled", token: ownerToken, body: body("amina@test.cd", "student"),
			wantCode: http.StatusCreated, wantData: marchallObj(t, map[string]string{"success": "amina@test.cd has been enrolled as student."}),
		},
		{
			name: "Duplicate enrollment", token: ownerToken, body: body("amina@test.cd", "student"),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "participant is already enrolled in this course"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = path

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// both halves of the enrollment edge landed
	assert.Equal(t, []string{student.ID}, db.CourseMembers(courseID, participant.RoleStudent))
	assert.Equal(t, []string{courseID}, db.ParticipantCourses(student.ID))
}
