package chronicle

import "math"

// deriveCrisisImpact turns a resolving crisis into its destructive
// fallout. Mitigation (or its Aid alias) reduces net severity; community
// focus shifts the losses between population and infrastructure.
func deriveCrisisImpact(ev *Event, res Resolution) CrisisImpact {
	mitigation := 0.0
	switch {
	case res.Mitigation != nil:
		mitigation = *res.Mitigation
	case res.Aid != nil:
		mitigation = *res.Aid
	}
	focus := 1.0
	if res.CommunityFocus != nil {
		focus = *res.CommunityFocus
	}

	net := math.Max(0, ev.Magnitude-mitigation)
	disruption := (ev.Magnitude + net) / 2 * ev.Duration

	return CrisisImpact{
		Severity:           ev.Magnitude,
		NetSeverity:        net,
		CommunityFocus:     focus,
		Disruption:         disruption,
		PopulationLoss:     int(math.Round(disruption * 1.5 / math.Max(0.5, focus))),
		InfrastructureLoss: int(math.Round(disruption * focus)),
		ResilienceTested:   net * (1 + float64(len(ev.Tags))*0.1),
		RecoveryIndex:      math.Max(0, focus*5-net*2),
	}
}

// deriveOpportunityResult turns a resolving opportunity into its
// constructive outcome, feeding the ledger for the types that leave a
// permanent record.
func (e *Engine) deriveOpportunityResult(ev *Event, res Resolution) OpportunityResult {
	out := OpportunityResult{
		Value: ev.Magnitude,
		Type:  ev.Type,
		Tags:  append([]string(nil), ev.Tags...),
	}

	switch ev.Type {
	case "artifact":
		artifact := e.catalogueFromEvent(ev, res)
		out.Artifact = &artifact
	case "refugee_experts":
		guild := e.integrateRefugees(ev, res)
		out.Guild = &guild
	}
	return out
}

func (e *Engine) catalogueFromEvent(ev *Event, res Resolution) Artifact {
	id := res.ArtifactID
	if id == "" {
		id = ev.Context["artifact_id"]
	}
	name := res.ArtifactName
	if name == "" {
		name = ev.Context["artifact_name"]
	}
	if name == "" {
		name = ev.Name
	}
	momentID := ""
	if res.Memory != nil {
		momentID = res.Memory.MomentID
	}
	return e.ledger.CatalogueArtifact(Artifact{
		ID:           id,
		Name:         name,
		DiscoveredAt: ev.StartedAt,
		CataloguedAt: e.clock,
		Rarity:       ev.Magnitude,
		Preserved:    res.Preserved,
		Curator:      res.Curator,
		Significance: res.Significance,
		Story:        res.Story,
		Tags:         ev.Tags,
		MomentID:     momentID,
	})
}

func (e *Engine) integrateRefugees(ev *Event, res Resolution) Guild {
	multiplier := 1.0
	if res.InfluenceMultiplier != nil {
		multiplier = *res.InfluenceMultiplier
	}
	name := res.GuildName
	if name == "" {
		name = ev.Context["guild_name"]
	}
	if name == "" {
		name = "Newcomer Artisans"
	}
	influence := ev.Magnitude * multiplier

	guild := e.ledger.EmpowerGuild(Guild{
		ID:            res.GuildID,
		Name:          name,
		Disciplines:   res.Disciplines,
		Influence:     influence,
		RefugeeCohort: res.RefugeeNames,
		EmpoweredAt:   e.clock,
		LastEmpowered: e.clock,
		Sponsor:       res.Sponsor,
	})

	// Audit trail only; not part of the queryable ledger surface.
	e.ledger.refugeeNetwork = append(e.ledger.refugeeNetwork, RefugeeRecord{
		Time:      e.clock,
		GuildID:   guild.ID,
		Names:     append([]string(nil), res.RefugeeNames...),
		Influence: influence,
	})
	return guild
}
