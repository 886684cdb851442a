package sampledata

// Profile is the salary envelope used to synthesize one state's districts.
// Minimums are inclusive, maximums exclusive.
type Profile struct {
	State   string
	Region  string
	BaseMin int
	BaseMax int
	TopMin  int
	TopMax  int
}

// Profiles are 2024 estimates per state.
var Profiles = []Profile{ //nolint:gochecknoglobals // read-only table
	{"New York", "Northeast", 58000, 95000, 95000, 130000},
	{"California", "West", 50000, 85000, 90000, 125000},
	{"Texas", "South", 44000, 60000, 62000, 85000},
	{"Florida", "South", 40000, 55000, 58000, 75000},
	{"Illinois", "Midwest", 45000, 65000, 70000, 95000},
	{"Pennsylvania", "Northeast", 46000, 62000, 68000, 92000},
	{"Ohio", "Midwest", 40000, 58000, 62000, 82000},
	{"Georgia", "South", 42000, 57000, 60000, 78000},
	{"North Carolina", "South", 38000, 52000, 55000, 72000},
	{"Michigan", "Midwest", 42000, 58000, 63000, 84000},
	{"Massachusetts", "Northeast", 50000, 75000, 85000, 115000},
	{"New Jersey", "Northeast", 52000, 78000, 88000, 120000},
	{"Virginia", "South", 42000, 58000, 62000, 80000},
	{"Washington", "West", 48000, 68000, 75000, 98000},
	{"Arizona", "West", 40000, 54000, 58000, 72000},
	{"Tennessee", "South", 40000, 54000, 58000, 74000},
	{"Indiana", "Midwest", 40000, 55000, 60000, 76000},
	{"Missouri", "Midwest", 38000, 52000, 56000, 71000},
	{"Maryland", "South", 50000, 68000, 75000, 100000},
	{"Wisconsin", "Midwest", 42000, 57000, 62000, 80000},
	{"Minnesota", "Midwest", 44000, 60000, 68000, 88000},
	{"Colorado", "West", 42000, 58000, 65000, 82000},
	{"Alabama", "South", 40000, 52000, 56000, 68000},
	{"South Carolina", "South", 38000, 50000, 54000, 68000},
	{"Louisiana", "South", 42000, 54000, 58000, 70000},
	{"Kentucky", "South", 40000, 52000, 56000, 70000},
	{"Oregon", "West", 44000, 60000, 68000, 88000},
	{"Oklahoma", "South", 36000, 48000, 52000, 62000},
	{"Connecticut", "Northeast", 48000, 72000, 82000, 110000},
	{"Iowa", "Midwest", 38000, 52000, 58000, 74000},
}

// District is a real district with published salary figures.
type District struct {
	Name                string
	Region              string
	StartingSalary      int
	MedianSalary        int
	TopSalary           int
	YearsToTop          int
	BudgetSharePct      float64
	NumTeachers         int
	StudentTeacherRatio float64
	DataSource          string
}

// DetailedState is the jurisdiction covered by DetailedDistricts.
const DetailedState = "Alabama"

// DetailedDistricts are 2024-2025 figures from district salary schedules
// and salary aggregators.
var DetailedDistricts = []District{ //nolint:gochecknoglobals // read-only table
	{"Baldwin County Schools", "Coastal", 47000, 54000, 72000, 25, 52.0, 1650, 16.5,
		"Baldwin County Board of Education salary schedule"},
	{"Mobile County Public Schools", "Coastal", 46500, 52000, 70000, 25, 51.0, 3200, 17.2,
		"Mobile County Public Schools (MCPSS) salary schedule"},
	{"Saraland City Schools", "Coastal", 46000, 49167, 68000, 23, 48.5, 185, 15.8,
		"Salary.com aggregated data"},
	{"Orange Beach City Schools", "Coastal", 45500, 48514, 66000, 22, 47.0, 95, 14.2,
		"Salary.com aggregated data"},
	{"Gulf Shores City Schools", "Coastal", 45800, 48541, 67000, 22, 47.5, 125, 14.8,
		"Gulf Shores City Schools 2024-2025 salary schedule"},
	{"Birmingham City Schools", "Central", 48000, 54922, 75000, 25, 53.0, 2380, 18.5,
		"Birmingham City Schools 2024-2025 salary schedule, Indeed/Glassdoor data"},
	{"Montgomery Public Schools", "Central", 45000, 47543, 65000, 24, 49.0, 2100, 17.8,
		"Montgomery Public Schools 2024-2025 salary schedule, Salary.com data"},
	{"Hoover City Schools", "Central", 49500, 56583, 78000, 24, 54.0, 1450, 16.2,
		"Glassdoor aggregated data, Teacher.org"},
	{"Huntsville City Schools", "Northern", 47500, 54989, 84716, 26, 52.5, 2850, 16.8,
		"Huntsville City Schools FY2025 salary schedule, Indeed/Glassdoor data"},
}
