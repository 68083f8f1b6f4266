package catalog

// periodEvents is the periods-scheme catalog: 10 events per period, 50 total.
var periodEvents = []Event{
	// Q1: First Quarter
	{ID: "q1_opening_kick_td", Name: "Opening Kickoff Returned for TD", Period: PeriodQ1},
	{ID: "q1_safety_first_play", Name: "Safety on First Offensive Play", Period: PeriodQ1},
	{ID: "q1_first_score_fg", Name: "First Score Is a Field Goal", Period: PeriodQ1},
	{ID: "q1_first_score_def_td", Name: "First Score Is a Defensive/ST Touchdown", Period: PeriodQ1},
	{ID: "q1_no_points", Name: "No Points Scored in Q1 (0-0)", Period: PeriodQ1},
	{ID: "q1_both_teams_score", Name: "Both Teams Score in Q1", Period: PeriodQ1},
	{ID: "q1_60yd_td", Name: "60+ Yard Offensive TD Play in Q1", Period: PeriodQ1},
	{ID: "q1_turnover_first_drive", Name: "Turnover on First Offensive Drive", Period: PeriodQ1},
	{ID: "q1_ends_tied", Name: "Q1 Ends with Score Tied", Period: PeriodQ1},
	{ID: "q1_first_td_rush", Name: "First Touchdown Is a Rushing TD", Period: PeriodQ1},

	// Q2: Second Quarter
	{ID: "q2_50yd_fg", Name: "50+ Yard Field Goal Made in Q2", Period: PeriodQ2},
	{ID: "q2_pick_six", Name: "Pick-Six Thrown in Q2", Period: PeriodQ2},
	{ID: "q2_tied_halftime", Name: "Score Tied at Halftime", Period: PeriodQ2},
	{ID: "q2_halftime_margin_14", Name: "Halftime Margin Is 14+ Points", Period: PeriodQ2},
	{ID: "q2_combined_half_34", Name: "Combined Score at Halftime Exceeds 34", Period: PeriodQ2},
	{ID: "q2_no_turnovers_half", Name: "Neither Team Has a Turnover in First Half", Period: PeriodQ2},
	{ID: "q2_missed_xp", Name: "Missed Extra Point in First Half", Period: PeriodQ2},
	{ID: "q2_blocked_punt_fg", Name: "Blocked Punt or FG in First Half", Period: PeriodQ2},
	{ID: "q2_non_qb_td_pass", Name: "Non-QB Throws a TD Pass in First Half", Period: PeriodQ2},
	{ID: "q2_player_2td", Name: "A Single Player Scores 2+ TDs by Halftime", Period: PeriodQ2},

	// Q3: Third Quarter
	{ID: "q3_first_drive_td", Name: "First Drive of Second Half Scores TD", Period: PeriodQ3},
	{ID: "q3_no_points", Name: "No Points Scored in Q3", Period: PeriodQ3},
	{ID: "q3_lead_change", Name: "Lead Changes Hands in Q3", Period: PeriodQ3},
	{ID: "q3_kick_ret_td", Name: "Kickoff Return TD in Q3", Period: PeriodQ3},
	{ID: "q3_fake_punt", Name: "Fake Punt Attempted in Q3", Period: PeriodQ3},
	{ID: "q3_70yd_td", Name: "70+ Yard TD Play in Q3", Period: PeriodQ3},
	{ID: "q3_safety", Name: "Safety Scored in Q3", Period: PeriodQ3},
	{ID: "q3_both_teams_score", Name: "Both Teams Score in Q3", Period: PeriodQ3},
	{ID: "q3_fumble_lost", Name: "Fumble Lost in Q3", Period: PeriodQ3},
	{ID: "q3_single_digit_margin", Name: "Q3 Ends with Single-Digit Margin (1-9 pts)", Period: PeriodQ3},

	// Q4: Fourth Quarter
	{ID: "q4_2pt_attempted", Name: "Two-Point Conversion Attempted", Period: PeriodQ4},
	{ID: "q4_failed_2pt", Name: "Failed Two-Point Conversion", Period: PeriodQ4},
	{ID: "q4_onside_kick", Name: "Successful Onside Kick (Q4 Only)", Period: PeriodQ4},
	{ID: "q4_fake_fg", Name: "Fake Field Goal Attempted in Q4", Period: PeriodQ4},
	{ID: "q4_pick_six", Name: "Pick-Six Thrown in Q4", Period: PeriodQ4},
	{ID: "q4_overtime", Name: "Game Goes to Overtime", Period: PeriodQ4},
	{ID: "q4_gw_field_goal", Name: "Game-Winning Score Is a Field Goal", Period: PeriodQ4},
	{ID: "q4_gw_final_2min", Name: "Game-Winning Score in Final 2 Minutes", Period: PeriodQ4},
	{ID: "q4_fumble_ret_td", Name: "Fumble Returned for TD in Q4", Period: PeriodQ4},
	{ID: "q4_highest_scoring", Name: "Q4 Is Highest-Scoring Quarter of Game", Period: PeriodQ4},

	// FG: Full Game Highlights
	{ID: "fg_gatorade_orange", Name: "Gatorade Bath Color Is ORANGE", Period: PeriodFG},
	{ID: "fg_gatorade_blue", Name: "Gatorade Bath Color Is BLUE", Period: PeriodFG},
	{ID: "fg_gatorade_clear", Name: "Gatorade Bath Is CLEAR/WATER", Period: PeriodFG},
	{ID: "fg_no_gatorade", Name: "NO Gatorade Bath Occurs", Period: PeriodFG},
	{ID: "fg_margin_3", Name: "Final Margin Exactly 3 Points", Period: PeriodFG},
	{ID: "fg_margin_7", Name: "Final Margin Exactly 7 Points", Period: PeriodFG},
	{ID: "fg_blowout", Name: "Blowout — Winning Margin 17+ Points", Period: PeriodFG},
	{ID: "fg_loser_single_digits", Name: "Losing Team Held to Single Digits (≤9 pts)", Period: PeriodFG},
	{ID: "fg_zero_turnovers", Name: "Zero Turnovers Entire Game (Both Teams)", Period: PeriodFG},
	{ID: "fg_combined_over_55", Name: "Combined Final Score Exceeds 55 Points", Period: PeriodFG},
}

// tierEvents is the tiers-scheme catalog, rarest tier first.
var tierEvents = []Event{
	// Tier 4: Totally Unlikely (<5%)
	{ID: "t4_punt_return_td", Name: "Punt Return Touchdown", Tier: Tier4},
	{ID: "t4_opening_kick_td", Name: "Opening Kickoff Returned for TD", Tier: Tier4},
	{ID: "t4_overtime", Name: "Game Goes to Overtime", Tier: Tier4},
	{ID: "t4_onside_kick", Name: "Successful Onside Kick", Tier: Tier4},
	{ID: "t4_blocked_ret_td", Name: "Blocked Punt/FG Returned for TD", Tier: Tier4},
	{ID: "t4_fake_fg", Name: "Fake Field Goal Attempted", Tier: Tier4},
	{ID: "t4_ejection", Name: "Player Ejected", Tier: Tier4},

	// Tier 3: Very Unlikely (<10%)
	{ID: "t3_non_qb_td_pass", Name: "Non-QB Throws a TD Pass", Tier: Tier3},
	{ID: "t3_blocked_punt", Name: "Blocked Punt", Tier: Tier3},

	// Tier 2: Unlikely (<20%)
	{ID: "t2_blocked_fg", Name: "Blocked Field Goal", Tier: Tier2},
	{ID: "t2_fumble_ret_td", Name: "Fumble Returned for TD", Tier: Tier2},
	{ID: "t2_margin_7", Name: "Final Margin Exactly 7 Points", Tier: Tier2},
	{ID: "t2_margin_3", Name: "Final Margin Exactly 3 Points", Tier: Tier2},
	{ID: "t2_safety", Name: "Safety Scored", Tier: Tier2},
	{ID: "t2_missed_xp", Name: "Missed Extra Point", Tier: Tier2},
	{ID: "t2_kick_ret_td", Name: "Kickoff Return Touchdown", Tier: Tier2},
	{ID: "t2_gatorade_blue", Name: "Gatorade Bath: Blue", Tier: Tier2},
	{ID: "t2_gatorade_clear", Name: "Gatorade Bath: Clear/Water", Tier: Tier2},
	{ID: "t2_no_gatorade", Name: "No Gatorade Bath Occurs", Tier: Tier2},
	{ID: "t2_50yd_fg", Name: "50+ Yard Field Goal Made", Tier: Tier2},

	// Tier 1: Hard But Possible (<50%)
	{ID: "t1_qb_rush_td", Name: "QB Rushes for Touchdown", Tier: Tier1},
	{ID: "t1_gatorade_orange", Name: "Gatorade Bath: Orange", Tier: Tier1},
	{ID: "t1_low_loser", Name: "Losing Team Scores ≤10", Tier: Tier1},
	{ID: "t1_pick_six", Name: "Pick-Six (INT Returned for TD)", Tier: Tier1},
	{ID: "t1_60yd_td", Name: "60+ Yard Offensive TD Play", Tier: Tier1},
	{ID: "t1_failed_2pt", Name: "Failed Two-Point Conversion", Tier: Tier1},
	{ID: "t1_blowout", Name: "Blowout (Margin 17+ Points)", Tier: Tier1},
	{ID: "t1_low_scoring", Name: "Neither Team Scores 25+", Tier: Tier1},
	{ID: "t1_2pt_attempted", Name: "Two-Point Conversion Attempted", Tier: Tier1},
	{ID: "t1_missed_fg", Name: "Missed Field Goal (Any)", Tier: Tier1},
}
