package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/oauth2"
	classroom "google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"
)

// Course is one importable Google Classroom course.
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassroomService imports rosters with the caller's scoped OAuth access
// token. The token comes from the sign-in flow and is never persisted.
type ClassroomService struct{}

var classroomService *ClassroomService

func InitClassroomService() {
	classroomService = &ClassroomService{}
	log.Println("Classroom service initialized")
}

func GetClassroomService() *ClassroomService {
	return classroomService
}

func (s *ClassroomService) newClient(ctx context.Context, accessToken string) (*classroom.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return classroom.NewService(ctx, option.WithTokenSource(source))
}

// ListCourses returns the caller's active courses.
func (s *ClassroomService) ListCourses(ctx context.Context, accessToken string) ([]Course, error) {
	svc, err := s.newClient(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Courses.List().CourseStates("ACTIVE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	courses := make([]Course, 0, len(resp.Courses))
	for _, c := range resp.Courses {
		courses = append(courses, Course{ID: c.Id, Name: c.Name})
	}
	return courses, nil
}

// FetchRoster returns the course's student full names joined ", ", the
// format the roster field and the random-leader picker expect.
func (s *ClassroomService) FetchRoster(ctx context.Context, accessToken string, courseID string) (string, error) {
	svc, err := s.newClient(ctx, accessToken)
	if err != nil {
		return "", err
	}

	var names []string
	pageToken := ""
	for {
		call := svc.Courses.Students.List(courseID).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("list students: %w", err)
		}
		for _, student := range resp.Students {
			if student.Profile != nil && student.Profile.Name != nil {
				names = append(names, student.Profile.Name.FullName)
			}
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if len(names) == 0 {
		return "", fmt.Errorf("no students found in course %s", courseID)
	}
	return strings.Join(names, ", "), nil
}
