package models

// Course is identified by a subject_course code, e.g. "MATH1010U".
type Course struct {
	SubjectCourse       string `db:"subject_course" json:"subjectCourse"`
	Subject             string `db:"subject" json:"subject"`
	SubjectDescription  string `db:"subject_description" json:"subjectDescription"`
	CourseTitle         string `db:"course_title" json:"courseTitle"`
	CourseNumber        string `db:"course_number" json:"courseNumber"`
}
