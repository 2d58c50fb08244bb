package dumpy

func registerDefaultFilters(d *Dumper) {
	d.addFilter("pre", filter{text: d.filterPre(d.cfg.HTML), html: d.filterPre(true)})
	d.addFilter("dump", filter{text: d.filterDump(d.cfg.HTML), html: d.filterDump(true)})
	d.addFilter("dumpy", filter{text: d.filterDumpy(d.cfg.HTML), html: d.filterDumpy(true)})
}
