package reducer

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// LoadDatabase refreshes the detector geometries and quality thresholds
// from the calibration tables for the given run. Without a database the
// built-in defaults stay in effect.
func LoadDatabase(dbConn *sqlx.DB, runNumber int) error {
	geoms, err := getGeometriesFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting detector geometries from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	if len(geoms) > 0 {
		geometries = geoms
	}

	th, err := getThresholdsFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting quality thresholds from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	if th != nil {
		thresholds = *th
	}
	return nil
}

type GeometryEntry struct {
	Detector    string  `db:"Detector"`
	RotationDeg float64 `db:"RotationDeg"`
	FlipY       int     `db:"FlipY"`
}

type ThresholdEntry struct {
	UVSaturation        float64 `db:"UVSaturation"`
	UVExcursion         float64 `db:"UVExcursion"`
	VisMinValidFraction float64 `db:"VisMinValidFraction"`
}

func getGeometriesFromDB(db *sqlx.DB, runNumber int) (map[string]DetectorGeometry, error) {
	query := "SELECT Detector, RotationDeg, FlipY FROM DetectorGeometry WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Reading detector geometries from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}

	geoms := make(map[string]DetectorGeometry)
	for rows.Next() {
		result := GeometryEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		geom := DetectorGeometry{Mode: GeometryRotate, RotationDeg: result.RotationDeg}
		if result.FlipY != 0 {
			geom = DetectorGeometry{Mode: GeometryFlip}
		}
		geoms[result.Detector] = geom
	}
	return geoms, nil
}

func getThresholdsFromDB(db *sqlx.DB, runNumber int) (*QualityThresholds, error) {
	query := "SELECT UVSaturation, UVExcursion, VisMinValidFraction FROM QualityThresholds WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}

	for rows.Next() {
		result := ThresholdEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		return &QualityThresholds{
			UVSaturation:        result.UVSaturation,
			UVExcursion:         result.UVExcursion,
			VisMinValidFraction: result.VisMinValidFraction,
		}, nil
	}
	return nil, nil
}
