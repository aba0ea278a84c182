package model

// CourseRow mirrors one record of the combined courses CSV. Numeric columns
// stay as strings so a malformed cell degrades instead of failing the load.
type CourseRow struct {
	Code        string `csv:"Course Code"`
	Title       string `csv:"Course Title"`
	Department  string `csv:"Department"`
	Section     string `csv:"Section"`
	SemesterSTR string `csv:"Semester"`
	LTPSC       string `csv:"LTPSC"`
	Faculty     string `csv:"Faculty"`
	StrengthSTR string `csv:"Strength"`
	TypeSTR     string `csv:"Type"`
}

// Course is an immutable catalog entry. LTPSC encodes weekly hours as
// lecture-tutorial-practical-selfstudy-credit.
type Course struct {
	Code       string
	Title      string
	Department string
	Section    string
	Semester   int
	LTPSC      string
	Faculty    string
	Strength   int
	Category   Category
}
