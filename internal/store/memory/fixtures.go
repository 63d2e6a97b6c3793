package memory

import "github.com/oshawa-scheduler/core/internal/models"

// strPtr is a small helper for building nullable string fields in fixtures.
func strPtr(s string) *string { return &s }

// Catalog202309 builds the committed test catalog fixture for term 202309,
// used across store, enumerator, solver, and orchestrator tests. Section
// times and link structure are invented but chosen to reproduce the scenario
// counts the core is tested against: one BIOL1000U combination, two
// CRMN1000U combinations, seven CSCI2000U combinations, and an EAP1000E
// section whose meeting time exactly overlaps BIOL1000U's, making the pair
// infeasible.
func Catalog202309() *Fixture {
	f := NewFixture()

	f.AddTerm(models.Term{ID: "202309", Description: "Fall 2023", RegistrationOpen: false})

	f.AddCourse(models.Course{SubjectCourse: "BIOL1000U", Subject: "BIOL", SubjectDescription: "Biology", CourseTitle: "Introductory Biology", CourseNumber: "1000U"})
	f.AddCourse(models.Course{SubjectCourse: "EAP1000E", Subject: "EAP", SubjectDescription: "English for Academic Purposes", CourseTitle: "EAP I", CourseNumber: "1000E"})
	f.AddCourse(models.Course{SubjectCourse: "CRMN1000U", Subject: "CRMN", SubjectDescription: "Criminology", CourseTitle: "Introduction to Criminology", CourseNumber: "1000U"})
	f.AddCourse(models.Course{SubjectCourse: "CSCI2000U", Subject: "CSCI", SubjectDescription: "Computer Science", CourseTitle: "Data Structures", CourseNumber: "2000U"})
	f.AddCourse(models.Course{SubjectCourse: "MATH1010U", Subject: "MATH", SubjectDescription: "Mathematics", CourseTitle: "Calculus I", CourseNumber: "1010U"})
	f.AddCourse(models.Course{SubjectCourse: "CSCI1030U", Subject: "CSCI", SubjectDescription: "Computer Science", CourseTitle: "Introductory Programming", CourseNumber: "1030U"})
	f.AddCourse(models.Course{SubjectCourse: "COMM1050U", Subject: "COMM", SubjectDescription: "Communications", CourseTitle: "Communication Theory", CourseNumber: "1050U"})
	f.AddCourse(models.Course{SubjectCourse: "PSYC1000U", Subject: "PSYC", SubjectDescription: "Psychology", CourseTitle: "Introductory Psychology", CourseNumber: "1000U"})

	const term = "202309"

	// BIOL1000U: single unlinked lecture, Monday 08:10-09:30.
	f.mustAddSection(term, "44746", "BIOL1000U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("0810", "0930", days("monday"))))

	// EAP1000E: single unlinked lecture with the exact same weekly time as
	// BIOL1000U, so the two courses can never co-occur.
	f.mustAddSection(term, "41010", "EAP1000E", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("0810", "0930", days("monday"))))

	// CRMN1000U: one linked lecture (min section count among linked types)
	// with two alternative tutorial options, so there are two combinations.
	// Neither tutorial time intersects BIOL1000U's Monday morning slot.
	f.mustAddSection(term, "42600", "CRMN1000U", "LEC", "CRMN-L1", true, true, "OT-North Oshawa",
		meetings(meeting("1010", "1100", days("tuesday"))))
	f.mustAddSection(term, "42601", "CRMN1000U", "TUT", "CRMN-L1", true, false, "OT-North Oshawa",
		meetings(meeting("1310", "1400", days("wednesday"))))
	f.mustAddSection(term, "42602", "CRMN1000U", "TUT", "CRMN-L1", true, false, "OT-North Oshawa",
		meetings(meeting("1510", "1600", days("thursday"))))
	f.linkedCRNs["202309|42600"] = models.LinkedCRNs{{"42601"}, {"42602"}}

	// CSCI2000U: one linked lecture (the only LEC, hence minimum count) with
	// seven alternative tutorial/lab options, giving seven combinations.
	f.mustAddSection(term, "43100", "CSCI2000U", "LEC", "CSCI2000-L1", true, true, "OT-North Oshawa",
		meetings(meeting("0940", "1100", days("friday"))))
	tutTimes := [][2]string{
		{"1110", "1200"}, {"1210", "1300"}, {"1310", "1400"},
		{"1410", "1500"}, {"1510", "1600"}, {"1610", "1700"}, {"1710", "1800"},
	}
	for i, span := range tutTimes {
		crn := []string{"43101", "43102", "43103", "43104", "43105", "43106", "43107"}[i]
		f.mustAddSection(term, crn, "CSCI2000U", "TUT", "CSCI2000-L1", true, false, "OT-North Oshawa",
			meetings(meeting(span[0], span[1], days("friday"))))
		f.linkedCRNs["202309|43100"] = append(f.linkedCRNs["202309|43100"], []string{crn})
	}

	// MATH1010U: CRN 40288 meets Tue/Fri 12:40-14:00; 45708 meets Thursday
	// only, so that {CSCI1030U:[42684,42946], MATH1010U:[40288,45708]}
	// together touch exactly five distinct weekdays.
	f.mustAddSection(term, "40288", "MATH1010U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1240", "1400", days("tuesday", "friday"))))
	f.mustAddSection(term, "40294", "MATH1010U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1410", "1530", days("tuesday", "friday"))))
	f.mustAddSection(term, "40301", "MATH1010U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1410", "1530", days("monday", "wednesday"))))
	f.mustAddSection(term, "42959", "MATH1010U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1610", "1730", days("monday", "wednesday"))))
	f.mustAddSection(term, "45708", "MATH1010U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1040", "1200", days("thursday"))))

	// CSCI1030U: 42684 meets Mon/Wed/Fri mornings; 42944 adds Tuesday,
	// 42946 meets Wednesday, a day 42684 already occupies.
	f.mustAddSection(term, "42684", "CSCI1030U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("0810", "0930", days("monday", "wednesday", "friday"))))
	f.mustAddSection(term, "42944", "CSCI1030U", "TUT", "CSCI1030-L1", false, true, "OT-North Oshawa",
		meetings(meeting("1010", "1100", days("tuesday"))))
	f.mustAddSection(term, "42946", "CSCI1030U", "TUT", "CSCI1030-L1", false, true, "OT-North Oshawa",
		meetings(meeting("1010", "1100", days("wednesday"))))

	// COMM1050U: 42750 is a fully asynchronous online lecture (empty
	// bitmap); 42768 is its companion tutorial.
	f.mustAddSection(term, "42750", "COMM1050U", "LEC", "COMM1050-L1", true, true, "OT-Online",
		meetings(asyncMeeting()))
	f.mustAddSection(term, "42768", "COMM1050U", "TUT", "COMM1050-L1", true, false, "OT-Online",
		meetings(asyncMeeting()))
	f.linkedCRNs["202309|42750"] = models.LinkedCRNs{{"42768"}}

	// PSYC1000U: 43546 is a downtown lecture that no scenario below depends
	// on.
	f.mustAddSection(term, "43546", "PSYC1000U", "LEC", "", false, true, "OT-Downtown Oshawa",
		meetings(meeting("1340", "1500", days("thursday"))))

	// Downtown/before/after filter scenario fixtures.
	f.mustAddSection(term, "40424", "PSYC1000U", "LEC", "", false, true, "OT-Downtown Oshawa",
		meetings(meeting("0940", "1100", days("tuesday"))))
	f.mustAddSection(term, "40291", "PSYC1000U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("0810", "0930", days("wednesday"))))

	// Enrollment scenario fixtures: 40372 open, 40371 closed.
	f.mustAddSection(term, "40372", "PSYC1000U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1510", "1630", days("tuesday"))))
	f.mustAddSection(term, "40371", "PSYC1000U", "LEC", "", false, true, "OT-North Oshawa",
		meetings(meeting("1640", "1800", days("tuesday"))))
	f.enrollment["202309|40372"] = models.EnrollmentInfo{Enrollment: intPtr(20), MaximumEnrollment: intPtr(40), SeatsAvailable: intPtr(20)}
	f.enrollment["202309|40371"] = models.EnrollmentInfo{Enrollment: intPtr(40), MaximumEnrollment: intPtr(40), SeatsAvailable: intPtr(0)}

	return f
}

func intPtr(i int) *int { return &i }

func days(ds ...string) map[string]bool {
	set := make(map[string]bool, len(ds))
	for _, d := range ds {
		set[d] = true
	}
	return set
}

func meeting(begin, end string, active map[string]bool) models.MeetingFaculty {
	return models.MeetingFaculty{MeetingTime: models.MeetingTime{
		BeginTime: strPtr(begin),
		EndTime:   strPtr(end),
		Monday:    active["monday"],
		Tuesday:   active["tuesday"],
		Wednesday: active["wednesday"],
		Thursday:  active["thursday"],
		Friday:    active["friday"],
		Saturday:  active["saturday"],
		Sunday:    active["sunday"],
	}}
}

func asyncMeeting() models.MeetingFaculty {
	return models.MeetingFaculty{MeetingTime: models.MeetingTime{}}
}

func meetings(ms ...models.MeetingFaculty) []models.MeetingFaculty { return ms }
