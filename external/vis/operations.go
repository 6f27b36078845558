package vis

// operation captures the fixed per-operation quirks of the VIS service:
// which XML element repeats in the response, the default field set, whether
// the operation may be asked for JSON, and whether the request needs the
// legacy <Requests> wrapper.
type operation struct {
	nodePath    string
	fields      string
	jsonAllowed bool
	wrapRequest bool
}

// operationTable is built once at startup and never mutated afterwards.
func operationTable() map[string]operation {
	return map[string]operation{
		// GetEventList only honors its filter as a <Filter .../> child
		// element, never as a Request attribute.
		"GetEventList": {
			nodePath:    "Event",
			fields:      "No Code Name StartDate EndDate Type NoParentEvent CountryCode HasBeachTournament HasMenTournament HasWomenTournament IsVisManaged",
			jsonAllowed: true,
		},
		"GetBeachTournamentList": {
			nodePath:    "BeachTournament",
			fields:      "No Name CountryCode CountryName City StartDate EndDate Season Gender Type Status Timezone",
			jsonAllowed: true,
		},
		"GetBeachTournament": {
			nodePath:    "BeachTournament",
			fields:      "No Name CountryCode City StartDate EndDate Season Gender Type Status Timezone",
			jsonAllowed: true,
		},
		"GetBeachTeamList": {
			nodePath:    "BeachTeam",
			fields:      "No NoTournament NoPlayer1 NoPlayer2 CountryCode Status ValidFrom ValidTo",
			jsonAllowed: true,
		},
		"GetPlayerList": {
			nodePath:    "Player",
			fields:      "No FirstName LastName BirthDate Height CountryCode Gender",
			jsonAllowed: true,
		},
		"GetPlayer": {
			nodePath:    "Player",
			fields:      "No FirstName LastName BirthDate Height CountryCode Gender",
			jsonAllowed: true,
		},
		"GetBeachMatchList": {
			nodePath:    "BeachMatch",
			fields:      "No NoTournament NoRound Phase NoTeamA NoTeamB MatchPointsA MatchPointsB DurationSet1 DurationSet2 DurationSet3 BeginDateTimeUtc DateTimeLocal ResultType Status",
			jsonAllowed: true,
		},
		"GetBeachRoundList": {
			nodePath:    "BeachRound",
			fields:      "No NoTournament Code Name Bracket Phase StartDate EndDate RankMethod",
			jsonAllowed: true,
		},
		// The ranking family answers NotInJson when JSON is requested, so
		// these are pinned to XML. GetBeachTournamentRanking additionally
		// needs the legacy <Requests> wrapper.
		"GetBeachTournamentRanking": {
			nodePath:    "BeachTournamentRankingEntry",
			fields:      "Rank Position NoTeam Points PrizeMoney",
			wrapRequest: true,
		},
		"GetBeachRoundRanking": {
			nodePath: "BeachRoundRankingEntry",
			fields:   "Position Rank TeamFederationCode TeamName MatchPoints MatchesWon MatchesLost",
		},
		"GetBeachWorldTourRanking": {
			nodePath: "BeachWorldTourRankingEntry",
			fields:   "Position NoPlayer1 NoPlayer2 TeamName EarnedPointsTeam",
		},
		"GetBeachOlympicSelectionRanking": {
			nodePath: "BeachOlympicSelectionRankingEntry",
			fields:   "Position NoPlayer1 NoPlayer2 TeamName Points",
		},
	}
}
