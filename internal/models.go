package internal

import "fmt"

// Reserved record field names
const (
	FieldRecordType       = "myType"
	FieldGameTimeSecs     = "timestamp"
	FieldMillisSinceEpoch = "msSinceEpoch"
	FieldID               = "ID"

	// SceneEntryRecord
	FieldSceneName = "sceneName"

	// MoleHitRecord
	FieldMoleResult   = "result"
	FieldMoleLifeTime = "moleLifeTime"
	FieldMoleTricky   = "wasTricky"
)

// RecordType is the value of the myType field
type RecordType string

const (
	RecordTypeGameSettings     RecordType = "GameSettingsRecord"
	RecordTypeAbsoluteActivity RecordType = "AbsoluteActivityRecord"
	RecordTypeSceneEntry       RecordType = "SceneEntryRecord"
	RecordTypeMoleHit          RecordType = "MoleHitRecord"
)

// RecordTypes lists the known record types
var RecordTypes = []RecordType{
	RecordTypeGameSettings,
	RecordTypeAbsoluteActivity,
	RecordTypeSceneEntry,
	RecordTypeMoleHit,
}

// ParseRecordType returns the known RecordType matching s
func ParseRecordType(s string) (RecordType, error) {
	for _, t := range RecordTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown record type: %q", s)
}

// MovementSource is the senderTag of an activity record
type MovementSource string

const (
	MovementHead      MovementSource = "Head"
	MovementLeftHand  MovementSource = "LeftHand"
	MovementRightHand MovementSource = "RightHand"
)

// FieldSenderTag names the movement source of an activity record
const FieldSenderTag = "senderTag"

// Scene names used by bWell
const (
	SceneSolarSystem = "Solar System Menu"
	SceneButterfly   = "Butterfly"
	SceneLab         = "Lab"
	SceneMole        = "Mole"
	SceneTheater     = "Theater"
)

// MoleResult is the outcome code carried by a MoleHitRecord
type MoleResult int

const (
	MoleSuccessCorrectColor MoleResult = iota
	MoleIgnoredTricky
	MoleErrorWrongColor
	MoleErrorPreviousHandColor
	MoleErrorWrongHand
	MoleMissed
	MoleEarlyResponseOnTricky
	MoleIgnoredInvalid
	MoleTableClearing
)

var moleResultNames = map[MoleResult]string{
	MoleSuccessCorrectColor:    "SUCCESS_CORRECT_COLOR",
	MoleIgnoredTricky:          "IGNORED_TRICKY",
	MoleErrorWrongColor:        "ERROR_GENERIC_WRONG_COLOR",
	MoleErrorPreviousHandColor: "ERROR_PREVIOUS_HAND_COLOR",
	MoleErrorWrongHand:         "ERROR_WRONG_HAND",
	MoleMissed:                 "MISSED",
	MoleEarlyResponseOnTricky:  "EARLY_RESPONSE_ON_TRICKY",
	MoleIgnoredInvalid:         "IGNORED_INVALID",
	MoleTableClearing:          "TABLE_CLEARING",
}

var moleResultDescriptions = map[MoleResult]string{
	MoleSuccessCorrectColor:    "Mole hit by correct colored hammer",
	MoleIgnoredTricky:          "Tricky mole ignored",
	MoleErrorWrongColor:        "Mole hit by wrong colored hammer",
	MoleErrorPreviousHandColor: "Mole hit by hammer that used to be the correct color",
	MoleErrorWrongHand:         "Mole hit by hammer of wrong color; other hand had correct color",
	MoleMissed:                 "Mole timed out and disappeared, had matching color period",
	MoleEarlyResponseOnTricky:  "Tricky mole hit before the stop signal",
	MoleIgnoredInvalid:         "Mole timed out, never had matching color",
	MoleTableClearing:          "Mole table cleared of remaining moles in play",
}

func (m MoleResult) String() string {
	if name, ok := moleResultNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MoleResult(%d)", int(m))
}

// Description returns the human-readable meaning of the result code
func (m MoleResult) Description() string {
	if d, ok := moleResultDescriptions[m]; ok {
		return d
	}
	return m.String()
}

// Valid reports whether m is a known result code
func (m MoleResult) Valid() bool {
	_, ok := moleResultNames[m]
	return ok
}

// MoleResultOf reads the result field of a mole-hit record
func MoleResultOf(r *Record) (MoleResult, bool) {
	v, ok := r.Get(FieldMoleResult)
	if !ok {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	res := MoleResult(int(f))
	return res, res.Valid()
}
